// Package lifecycle holds the lesson-plan status machine shared by the API
// service and the workflow controller.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

// Actor is the party triggering a transition.
type Actor string

const (
	ActorTeacher Actor = "teacher"
	ActorManager Actor = "manager"
)

// Action names a workflow transition.
type Action string

const (
	ActionSubmit        Action = "submit"
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionReturnToDraft Action = "returnToDraft"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
)

var (
	// ErrIllegalTransition is returned for any (status, action) pair outside the table.
	ErrIllegalTransition = errors.New("illegal lesson plan transition")
	// ErrActorNotAllowed is returned when the action exists but belongs to the other actor.
	ErrActorNotAllowed = errors.New("actor not allowed to perform action")
	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("rejection reason is required")
)

type edge struct {
	from   models.PlanStatus
	action Action
}

type rule struct {
	actor Actor
	to    models.PlanStatus
}

// StatusRemoved is the target of delete: the plan no longer exists.
const StatusRemoved models.PlanStatus = 0

var table = map[edge]rule{
	{models.PlanStatusDraft, ActionSubmit}:           {ActorTeacher, models.PlanStatusPending},
	{models.PlanStatusDraft, ActionEdit}:             {ActorTeacher, models.PlanStatusDraft},
	{models.PlanStatusPending, ActionApprove}:        {ActorManager, models.PlanStatusApproved},
	{models.PlanStatusPending, ActionReject}:         {ActorManager, models.PlanStatusRejected},
	{models.PlanStatusRejected, ActionReturnToDraft}: {ActorTeacher, models.PlanStatusDraft},
	{models.PlanStatusRejected, ActionDelete}:        {ActorTeacher, StatusRemoved},
}

// Next returns the status reached by applying action from status as actor.
func Next(from models.PlanStatus, action Action, actor Actor) (models.PlanStatus, error) {
	r, ok := table[edge{from, action}]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrIllegalTransition, action, from)
	}
	if r.actor != actor {
		return from, fmt.Errorf("%w: %s cannot %s", ErrActorNotAllowed, actor, action)
	}
	return r.to, nil
}

// Transition is a validated request to move a plan between statuses.
type Transition struct {
	PlanID int64
	Action Action
	Actor  Actor
	From   models.PlanStatus
	To     models.PlanStatus
	Reason string
}

// Build validates and constructs a transition. It is the only way to obtain one.
func Build(planID int64, from models.PlanStatus, action Action, actor Actor, reason string) (Transition, error) {
	reason = strings.TrimSpace(reason)
	if action == ActionReject && reason == "" {
		return Transition{}, ErrReasonRequired
	}
	to, err := Next(from, action, actor)
	if err != nil {
		return Transition{}, err
	}
	return Transition{PlanID: planID, Action: action, Actor: actor, From: from, To: to, Reason: reason}, nil
}

// Allowed lists the actions the actor may trigger from status, in a stable order.
func Allowed(from models.PlanStatus, actor Actor) []Action {
	order := []Action{ActionEdit, ActionSubmit, ActionApprove, ActionReject, ActionReturnToDraft, ActionDelete}
	actions := make([]Action, 0, 2)
	for _, a := range order {
		if r, ok := table[edge{from, a}]; ok && r.actor == actor {
			actions = append(actions, a)
		}
	}
	return actions
}

// ActorFor maps a user role onto a workflow actor.
func ActorFor(role models.UserRole) (Actor, bool) {
	switch role {
	case models.RoleTeacher:
		return ActorTeacher, true
	case models.RoleManager, models.RoleAdmin:
		return ActorManager, true
	default:
		return "", false
	}
}
