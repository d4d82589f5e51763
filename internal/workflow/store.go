package workflow

import (
	"sync"

	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/listview"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/internal/treecache"
)

// Store is the state owned by one mounted workflow view.
type Store struct {
	mu         sync.Mutex
	tree       *treecache.Cache
	filter     listview.Filter
	page       *models.Page[models.LessonPlan]
	notice     *listview.Notice
	listNotice bool
	generation uint64
	inFlight   uint64
	statuses   map[int64]models.PlanStatus
	owners     map[int64]string
	closed     bool
}

// NewStore creates the store for a view.
func NewStore(tree *treecache.Cache, filter listview.Filter) *Store {
	return &Store{
		tree:     tree,
		filter:   filter,
		statuses: make(map[int64]models.PlanStatus),
		owners:   make(map[int64]string),
	}
}

// Tree returns the view's tree cache.
func (s *Store) Tree() *treecache.Cache {
	return s.tree
}

// Filter returns the current filter.
func (s *Store) Filter() listview.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Close tears the store down. Responses still in flight are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.page = nil
	s.notice = nil
	s.listNotice = false
	s.statuses = make(map[int64]models.PlanStatus)
	s.owners = make(map[int64]string)
}

func (s *Store) apply(change listview.Change) (listview.Filter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, refresh := s.filter.Apply(change)
	s.filter = next
	return next, refresh && !s.closed
}

// begin tags a new list request. Older requests become stale.
func (s *Store) begin() (uint64, listview.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.inFlight = s.generation
	return s.generation, s.filter
}

// finish applies a list response if it is still the latest request.
func (s *Store) finish(gen uint64, page *models.Page[models.LessonPlan]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.closed {
		return false
	}
	s.inFlight = 0
	if page != nil {
		s.page = page
		for _, plan := range page.Items {
			s.statuses[plan.ID] = plan.Status
			s.owners[plan.ID] = plan.TeacherID
		}
	}
	return true
}

func (s *Store) loading() bool {
	return s.inFlight != 0
}

func (s *Store) setNotice(n *listview.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = n
	s.listNotice = false
}

// setListNotice records a list query failure; the next successful query clears it.
func (s *Store) setListNotice(n *listview.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = n
	s.listNotice = true
}

// clearListNotice drops the notice only when it came from a failed list query.
func (s *Store) clearListNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listNotice {
		s.notice = nil
		s.listNotice = false
	}
}

func (s *Store) status(planID int64) (models.PlanStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.statuses[planID]
	return st, ok
}

func (s *Store) owner(planID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.owners[planID]
	return id, ok
}

func (s *Store) rememberPlan(plan models.LessonPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[plan.ID] = plan.Status
	s.owners[plan.ID] = plan.TeacherID
	if s.page == nil {
		return
	}
	for i := range s.page.Items {
		if s.page.Items[i].ID == plan.ID {
			s.page.Items[i] = plan
		}
	}
}

// moved records a confirmed transition and drops the plan from the status-filtered page.
func (s *Store) moved(planID int64, to models.PlanStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to == lifecycle.StatusRemoved {
		delete(s.statuses, planID)
		delete(s.owners, planID)
	} else {
		s.statuses[planID] = to
	}
	if s.page == nil {
		return
	}
	if to != lifecycle.StatusRemoved && (s.filter.Status == 0 || s.filter.Status == to) {
		for i := range s.page.Items {
			if s.page.Items[i].ID == planID {
				s.page.Items[i].Status = to
			}
		}
		return
	}
	kept := s.page.Items[:0:0]
	removed := false
	for _, plan := range s.page.Items {
		if plan.ID == planID {
			removed = true
			continue
		}
		kept = append(kept, plan)
	}
	if removed {
		page := *s.page
		page.Items = kept
		page.TotalRecords--
		page.TotalPages = models.TotalPagesFor(page.TotalRecords, s.filter.PageSize)
		s.page = &page
	}
}

func (s *Store) input(actor lifecycle.Actor) listview.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := listview.Input{
		Filter:  s.filter,
		Loading: s.loading(),
		Actor:   actor,
	}
	if s.tree != nil {
		in.Tree = s.tree
	}
	if s.page != nil {
		page := *s.page
		page.Items = append([]models.LessonPlan(nil), s.page.Items...)
		in.Page = &page
	}
	if s.notice != nil {
		n := *s.notice
		in.Notice = &n
	}
	return in
}
