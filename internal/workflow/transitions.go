package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/apiclient"
	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

var errPrecondition = errors.New("precondition failed")

// Redirect tells the host which status list to show after a transition, and when.
type Redirect struct {
	Status models.PlanStatus
	After  time.Duration
}

// FollowRedirect waits out the delay and switches the list to the target status.
func (c *Controller) FollowRedirect(ctx context.Context, r Redirect) error {
	if r.After > 0 {
		timer := time.NewTimer(r.After)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return c.SetStatus(ctx, r.Status)
}

// Submit sends a Draft for review.
func (c *Controller) Submit(ctx context.Context, planID int64) (Redirect, error) {
	return c.transition(ctx, planID, lifecycle.ActionSubmit, "", func() (*apiclient.Response, error) {
		return c.api.SubmitLessonPlan(ctx, planID)
	})
}

// Approve accepts a Pending plan.
func (c *Controller) Approve(ctx context.Context, planID int64) (Redirect, error) {
	return c.transition(ctx, planID, lifecycle.ActionApprove, "", func() (*apiclient.Response, error) {
		return c.api.ApproveLessonPlan(ctx, planID)
	})
}

// Reject turns a Pending plan down with a reason.
func (c *Controller) Reject(ctx context.Context, planID int64, reason string) (Redirect, error) {
	var sent string
	return c.transition(ctx, planID, lifecycle.ActionReject, reason, func() (*apiclient.Response, error) {
		return c.api.RejectLessonPlan(ctx, planID, sent)
	}, func(t lifecycle.Transition) { sent = t.Reason })
}

// ReturnToDraft reopens a Rejected plan.
func (c *Controller) ReturnToDraft(ctx context.Context, planID int64) (Redirect, error) {
	return c.transition(ctx, planID, lifecycle.ActionReturnToDraft, "", func() (*apiclient.Response, error) {
		return c.api.ReturnLessonPlanToDraft(ctx, planID)
	})
}

// DeletePlan permanently removes a Rejected plan. The redirect keeps the Rejected list.
func (c *Controller) DeletePlan(ctx context.Context, planID int64) (Redirect, error) {
	return c.transition(ctx, planID, lifecycle.ActionDelete, "", func() (*apiclient.Response, error) {
		return c.api.DeleteLessonPlan(ctx, planID)
	})
}

func (c *Controller) transition(ctx context.Context, planID int64, action lifecycle.Action, reason string, send func() (*apiclient.Response, error), prepared ...func(lifecycle.Transition)) (Redirect, error) {
	from, err := c.knownStatus(ctx, planID)
	if err != nil {
		return Redirect{}, c.fail(err)
	}
	t, err := lifecycle.Build(planID, from, action, c.actor, reason)
	if err != nil {
		return Redirect{}, c.fail(fmt.Errorf("%w: %v", errPrecondition, err))
	}
	for _, fn := range prepared {
		fn(t)
	}

	resp, callErr := send()
	if !IsTransitionSuccess(resp, callErr) {
		c.logger.Info("lesson plan transition failed", zap.Int64("plan_id", planID), zap.String("action", string(action)), zap.Error(callErr))
		if callErr == nil {
			appErr := &apiclient.Error{Kind: apiclient.KindApplication, Message: transitionFailureMessage(resp)}
			if resp != nil {
				appErr.Status, appErr.Code = resp.Status, resp.Code
			}
			callErr = appErr
		}
		return Redirect{}, c.fail(callErr)
	}

	c.store.moved(planID, t.To)
	c.succeed(successMessage)
	target := t.To
	if target == lifecycle.StatusRemoved {
		target = t.From
	}
	c.logger.Info("lesson plan transition applied", zap.Int64("plan_id", planID), zap.String("action", string(action)), zap.Stringer("to", target))
	return Redirect{Status: target, After: c.redirectDelay}, nil
}

func transitionFailureMessage(resp *apiclient.Response) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	if resp != nil {
		return fmt.Sprintf("transition failed with code %d", resp.Code)
	}
	return "transition failed"
}

// knownStatus returns the last status seen for the plan, fetching detail once
// if unseen. A teacher may only act on their own plans.
func (c *Controller) knownStatus(ctx context.Context, planID int64) (models.PlanStatus, error) {
	st, ok := c.store.status(planID)
	if !ok {
		plan, err := c.api.LessonPlan(ctx, planID)
		if err != nil {
			return 0, err
		}
		c.store.rememberPlan(*plan)
		st = plan.Status
	}
	if c.actor == lifecycle.ActorTeacher && c.userID != "" {
		if owner, known := c.store.owner(planID); known && owner != "" && owner != c.userID {
			return 0, fmt.Errorf("%w: lesson plan %d belongs to another teacher", errPrecondition, planID)
		}
	}
	return st, nil
}

// LoadPlan fetches plan detail and records its status.
func (c *Controller) LoadPlan(ctx context.Context, planID int64) (*models.LessonPlan, error) {
	plan, err := c.api.LessonPlan(ctx, planID)
	if err != nil {
		return nil, c.fail(err)
	}
	c.store.rememberPlan(*plan)
	return plan, nil
}

// CreateDraft starts a new plan in Draft.
func (c *Controller) CreateDraft(ctx context.Context, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error) {
	if c.actor != lifecycle.ActorTeacher {
		return nil, c.fail(fmt.Errorf("%w: only teachers author lesson plans", errPrecondition))
	}
	plan, err := c.api.CreateLessonPlan(ctx, req)
	if err != nil {
		return nil, c.fail(err)
	}
	c.store.rememberPlan(*plan)
	c.succeed("Lesson plan created")
	return plan, nil
}

// EditDraft replaces the content of a Draft plan.
func (c *Controller) EditDraft(ctx context.Context, planID int64, content models.PlanContent) (*models.LessonPlan, error) {
	from, err := c.knownStatus(ctx, planID)
	if err != nil {
		return nil, c.fail(err)
	}
	if _, err := lifecycle.Build(planID, from, lifecycle.ActionEdit, c.actor, ""); err != nil {
		return nil, c.fail(fmt.Errorf("%w: %v", errPrecondition, err))
	}
	plan, err := c.api.UpdateLessonPlan(ctx, planID, content)
	if err != nil {
		return nil, c.fail(err)
	}
	c.store.rememberPlan(*plan)
	c.succeed(successMessage)
	return plan, nil
}
