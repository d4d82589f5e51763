package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

var statuses = []models.PlanStatus{
	models.PlanStatusDraft,
	models.PlanStatusPending,
	models.PlanStatusApproved,
	models.PlanStatusRejected,
}

var actions = []Action{ActionSubmit, ActionApprove, ActionReject, ActionReturnToDraft, ActionEdit, ActionDelete}

func TestNextLegalTransitions(t *testing.T) {
	cases := []struct {
		from   models.PlanStatus
		action Action
		actor  Actor
		to     models.PlanStatus
	}{
		{models.PlanStatusDraft, ActionSubmit, ActorTeacher, models.PlanStatusPending},
		{models.PlanStatusPending, ActionApprove, ActorManager, models.PlanStatusApproved},
		{models.PlanStatusPending, ActionReject, ActorManager, models.PlanStatusRejected},
		{models.PlanStatusRejected, ActionReturnToDraft, ActorTeacher, models.PlanStatusDraft},
		{models.PlanStatusDraft, ActionEdit, ActorTeacher, models.PlanStatusDraft},
		{models.PlanStatusRejected, ActionDelete, ActorTeacher, StatusRemoved},
	}
	for _, tc := range cases {
		to, err := Next(tc.from, tc.action, tc.actor)
		require.NoError(t, err, "%s from %s", tc.action, tc.from)
		assert.Equal(t, tc.to, to)
	}
}

func TestNextIsTotalAndRejectsEverythingElse(t *testing.T) {
	legal := 0
	for _, from := range statuses {
		for _, action := range actions {
			for _, actor := range []Actor{ActorTeacher, ActorManager} {
				to, err := Next(from, action, actor)
				if err == nil {
					legal++
					continue
				}
				assert.Equal(t, from, to, "rejected transition must leave status unchanged")
			}
		}
	}
	assert.Equal(t, len(table), legal)
}

func TestNextRejectsBackwardsFromApproved(t *testing.T) {
	for _, actor := range []Actor{ActorTeacher, ActorManager} {
		for _, action := range actions {
			_, err := Next(models.PlanStatusApproved, action, actor)
			assert.ErrorIs(t, err, ErrIllegalTransition)
		}
	}
}

func TestNextWrongActor(t *testing.T) {
	_, err := Next(models.PlanStatusPending, ActionApprove, ActorTeacher)
	assert.ErrorIs(t, err, ErrActorNotAllowed)

	_, err = Next(models.PlanStatusDraft, ActionSubmit, ActorManager)
	assert.ErrorIs(t, err, ErrActorNotAllowed)
}

func TestBuildRequiresReasonForReject(t *testing.T) {
	_, err := Build(42, models.PlanStatusPending, ActionReject, ActorManager, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)

	tr, err := Build(42, models.PlanStatusPending, ActionReject, ActorManager, " Thiếu mục tiêu ")
	require.NoError(t, err)
	assert.Equal(t, "Thiếu mục tiêu", tr.Reason)
	assert.Equal(t, models.PlanStatusRejected, tr.To)
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, []Action{ActionEdit, ActionSubmit}, Allowed(models.PlanStatusDraft, ActorTeacher))
	assert.Equal(t, []Action{ActionApprove, ActionReject}, Allowed(models.PlanStatusPending, ActorManager))
	assert.Equal(t, []Action{ActionReturnToDraft, ActionDelete}, Allowed(models.PlanStatusRejected, ActorTeacher))
	assert.Empty(t, Allowed(models.PlanStatusApproved, ActorTeacher))
	assert.Empty(t, Allowed(models.PlanStatusApproved, ActorManager))
}

func TestActorFor(t *testing.T) {
	actor, ok := ActorFor(models.RoleTeacher)
	assert.True(t, ok)
	assert.Equal(t, ActorTeacher, actor)

	actor, ok = ActorFor(models.RoleAdmin)
	assert.True(t, ok)
	assert.Equal(t, ActorManager, actor)

	_, ok = ActorFor(models.UserRole("STUDENT"))
	assert.False(t, ok)
}
