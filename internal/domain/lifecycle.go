package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotArchivable     = errors.New("only voided or ended items can be archived")
	ErrNotDeletable      = errors.New("only pending items can be deleted")
	ErrTerminal          = errors.New("item is voided or ended")
)

type Transition string

const (
	TransitionApprove   Transition = "approve"
	TransitionPublish   Transition = "publish"
	TransitionUnpublish Transition = "unpublish"
	TransitionVoid      Transition = "void"
	TransitionEnd       Transition = "end"
)

type edge[S ~string] struct {
	from []S
	to   S
}

type lifecycle[S ~string] map[Transition]edge[S]

func (l lifecycle[S]) next(from S, t Transition) (S, error) {
	e, ok := l[t]
	if !ok {
		return from, fmt.Errorf("%w: unknown transition %q", ErrInvalidTransition, t)
	}
	for _, s := range e.from {
		if s == from {
			return e.to, nil
		}
	}
	return from, fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, t, from)
}

var eventLifecycle = lifecycle[EventStatus]{
	TransitionApprove:   {from: []EventStatus{EventStatusPending}, to: EventStatusApproved},
	TransitionPublish:   {from: []EventStatus{EventStatusApproved}, to: EventStatusPublished},
	TransitionUnpublish: {from: []EventStatus{EventStatusPublished}, to: EventStatusApproved},
	TransitionVoid:      {from: []EventStatus{EventStatusApproved, EventStatusPublished}, to: EventStatusVoided},
	TransitionEnd:       {from: []EventStatus{EventStatusApproved, EventStatusPublished}, to: EventStatusEnded},
}

var challengeLifecycle = lifecycle[ChallengeStatus]{
	TransitionApprove:   {from: []ChallengeStatus{ChallengeStatusPending}, to: ChallengeStatusActive},
	TransitionPublish:   {from: []ChallengeStatus{ChallengeStatusActive}, to: ChallengeStatusPublished},
	TransitionUnpublish: {from: []ChallengeStatus{ChallengeStatusPublished}, to: ChallengeStatusActive},
	TransitionVoid:      {from: []ChallengeStatus{ChallengeStatusActive, ChallengeStatusPublished}, to: ChallengeStatusVoided},
	TransitionEnd:       {from: []ChallengeStatus{ChallengeStatusActive, ChallengeStatusPublished}, to: ChallengeStatusEnded},
}

// NextEventStatus returns the status reached by applying t to from.
func NextEventStatus(from EventStatus, t Transition) (EventStatus, error) {
	return eventLifecycle.next(from, t)
}

// NextChallengeStatus returns the status reached by applying t to from.
func NextChallengeStatus(from ChallengeStatus, t Transition) (ChallengeStatus, error) {
	return challengeLifecycle.next(from, t)
}

// Apply moves the event along the lifecycle graph and updates the fields that
// travel with each edge. reason is only used by TransitionVoid.
func (e *Event) Apply(t Transition, reason string, now time.Time) error {
	next, err := NextEventStatus(e.Status, t)
	if err != nil {
		return err
	}
	switch t {
	case TransitionPublish:
		e.PublishedAt = &now
	case TransitionUnpublish:
		e.PublishedAt = nil
	case TransitionVoid:
		e.VoidReason = &reason
	}
	e.Status = next
	e.UpdatedAt = now
	return nil
}

// Archive marks a terminal event hidden from default list views. The status
// does not change.
func (e *Event) Archive(now time.Time) error {
	if !e.Status.Terminal() {
		return ErrNotArchivable
	}
	marked := appendArchiveMarker(e.VoidReason)
	e.VoidReason = &marked
	e.UpdatedAt = now
	return nil
}

func (e *Event) CanDelete() error {
	if e.Status != EventStatusPending {
		return ErrNotDeletable
	}
	return nil
}

func (c *Challenge) Apply(t Transition, reason string, now time.Time) error {
	next, err := NextChallengeStatus(c.Status, t)
	if err != nil {
		return err
	}
	switch t {
	case TransitionPublish:
		c.PublishedAt = &now
	case TransitionUnpublish:
		c.PublishedAt = nil
	case TransitionVoid:
		c.VoidReason = &reason
		c.VoidedAt = &now
	case TransitionEnd:
		c.EndedAt = &now
	}
	c.Status = next
	return nil
}

func (c *Challenge) Archive() error {
	if !c.Status.Terminal() {
		return ErrNotArchivable
	}
	marked := appendArchiveMarker(c.VoidReason)
	c.VoidReason = &marked
	return nil
}

func (c *Challenge) CanDelete() error {
	if c.Status != ChallengeStatusPending {
		return ErrNotDeletable
	}
	return nil
}
