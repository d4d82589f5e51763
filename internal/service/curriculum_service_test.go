package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/models"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

type stubCurriculumRepo struct {
	items map[int64]*models.Curriculum
	saved int
}

func (s *stubCurriculumRepo) ListByGrade(ctx context.Context, gradeID int64) ([]models.Curriculum, error) {
	var out []models.Curriculum
	for _, c := range s.items {
		if c.GradeID == gradeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCurriculumRepo) FindByID(ctx context.Context, id int64) (*models.Curriculum, error) {
	if c, ok := s.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubCurriculumRepo) Save(ctx context.Context, c *models.Curriculum) error {
	s.saved++
	if c.ID == 0 {
		c.ID = int64(len(s.items) + 1)
	}
	for i := range c.Details {
		c.Details[i].CurriculumID = c.ID
		c.Details[i].Position = i + 1
	}
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

type stubGradeRepo map[int64]models.Grade

func (s stubGradeRepo) List(ctx context.Context) ([]models.Grade, error) {
	var out []models.Grade
	for _, g := range s {
		out = append(out, g)
	}
	return out, nil
}

func (s stubGradeRepo) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	if g, ok := s[id]; ok {
		return &g, nil
	}
	return nil, sql.ErrNoRows
}

func newCurriculumFixture() (*CurriculumService, *stubCurriculumRepo) {
	repo := &stubCurriculumRepo{items: map[int64]*models.Curriculum{}}
	grades := stubGradeRepo{5: {ID: 5, Name: "Lớp 5"}}
	return NewCurriculumService(repo, grades, nil, nil), repo
}

func TestCurriculumServiceCreateOrdersDetails(t *testing.T) {
	svc, repo := newCurriculumFixture()

	created, err := svc.Create(context.Background(), dto.CurriculumRequest{
		GradeID:      5,
		Year:         2024,
		Description:  "  Toán 5 ",
		TotalPeriods: 175,
		Details: []dto.CurriculumDetailRequest{
			{Topic: "Số học", Section: "Phân số"},
			{Topic: " Hình học ", Section: "Diện tích"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Toán 5", created.Description)
	require.Len(t, created.Details, 2)
	assert.Equal(t, "Hình học", created.Details[1].Topic)
	assert.Equal(t, 2, created.Details[1].Position)
	assert.Equal(t, 1, repo.saved)
}

func TestCurriculumServiceRejectsBadPayloads(t *testing.T) {
	svc, repo := newCurriculumFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CurriculumRequest{GradeID: 9, Year: 2024})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, dto.CurriculumRequest{GradeID: 5, Year: 1990})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, dto.CurriculumRequest{GradeID: 5, Year: 2024, Details: []dto.CurriculumDetailRequest{{Section: "no topic"}}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.saved)
}

func TestCurriculumServiceUpdateMissing(t *testing.T) {
	svc, _ := newCurriculumFixture()

	_, err := svc.Update(context.Background(), 42, dto.CurriculumRequest{GradeID: 5, Year: 2024})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
