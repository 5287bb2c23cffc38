package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEventStatus(t *testing.T) {
	allowed := map[EventStatus]map[Transition]EventStatus{
		EventStatusPending:   {TransitionApprove: EventStatusApproved},
		EventStatusApproved:  {TransitionPublish: EventStatusPublished, TransitionVoid: EventStatusVoided, TransitionEnd: EventStatusEnded},
		EventStatusPublished: {TransitionUnpublish: EventStatusApproved, TransitionVoid: EventStatusVoided, TransitionEnd: EventStatusEnded},
		EventStatusVoided:    {},
		EventStatusEnded:     {},
	}
	transitions := []Transition{TransitionApprove, TransitionPublish, TransitionUnpublish, TransitionVoid, TransitionEnd}

	for from, edges := range allowed {
		for _, tr := range transitions {
			next, err := NextEventStatus(from, tr)
			if want, ok := edges[tr]; ok {
				assert.NoError(t, err, "%s --%s-->", from, tr)
				assert.Equal(t, want, next)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s --%s-->", from, tr)
				assert.Equal(t, from, next)
			}
		}
	}
}

func TestNextChallengeStatus(t *testing.T) {
	next, err := NextChallengeStatus(ChallengeStatusPending, TransitionApprove)
	require.NoError(t, err)
	assert.Equal(t, ChallengeStatusActive, next)

	next, err = NextChallengeStatus(ChallengeStatusPublished, TransitionUnpublish)
	require.NoError(t, err)
	assert.Equal(t, ChallengeStatusActive, next)

	_, err = NextChallengeStatus(ChallengeStatusEnded, TransitionPublish)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextChallengeStatus(ChallengeStatusPending, TransitionVoid)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEvent_Apply(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Publish stamps and unpublish clears", func(t *testing.T) {
		e := &Event{Status: EventStatusApproved}
		require.NoError(t, e.Apply(TransitionPublish, "", now))
		assert.Equal(t, EventStatusPublished, e.Status)
		require.NotNil(t, e.PublishedAt)
		assert.True(t, e.IsNew(now.Add(6*24*time.Hour)))
		assert.False(t, e.IsNew(now.Add(8*24*time.Hour)))

		require.NoError(t, e.Apply(TransitionUnpublish, "", now))
		assert.Equal(t, EventStatusApproved, e.Status)
		assert.Nil(t, e.PublishedAt)
	})

	t.Run("Void records reason", func(t *testing.T) {
		e := &Event{Status: EventStatusPublished}
		require.NoError(t, e.Apply(TransitionVoid, "venue closed", now))
		assert.Equal(t, EventStatusVoided, e.Status)
		assert.Equal(t, "venue closed", *e.VoidReason)
	})

	t.Run("Terminal events cannot be resurrected", func(t *testing.T) {
		e := &Event{Status: EventStatusEnded}
		err := e.Apply(TransitionPublish, "", now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, EventStatusEnded, e.Status)
	})
}

func TestEvent_Archive(t *testing.T) {
	now := time.Now()

	t.Run("Appends marker once", func(t *testing.T) {
		reason := "rain"
		e := &Event{Status: EventStatusVoided, VoidReason: &reason}
		require.NoError(t, e.Archive(now))
		assert.Equal(t, "rain [ARCHIVED]", *e.VoidReason)
		assert.True(t, e.IsArchived())

		require.NoError(t, e.Archive(now))
		assert.Equal(t, "rain [ARCHIVED]", *e.VoidReason)
		assert.Equal(t, EventStatusVoided, e.Status)
	})

	t.Run("Ended event without reason", func(t *testing.T) {
		e := &Event{Status: EventStatusEnded}
		require.NoError(t, e.Archive(now))
		assert.Equal(t, ArchiveMarker, *e.VoidReason)
	})

	t.Run("Live event rejected", func(t *testing.T) {
		e := &Event{Status: EventStatusPublished}
		assert.ErrorIs(t, e.Archive(now), ErrNotArchivable)
		assert.Nil(t, e.VoidReason)
	})
}

func TestEvent_CanDelete(t *testing.T) {
	assert.NoError(t, (&Event{Status: EventStatusPending}).CanDelete())
	assert.ErrorIs(t, (&Event{Status: EventStatusApproved}).CanDelete(), ErrNotDeletable)
}
