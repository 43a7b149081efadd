package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	var got []any
	sub, err := b.Subscribe("episode.step", func(e Event) error {
		got = append(got, e.Data())
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID())
	assert.Equal(t, "episode.step", sub.EventType())
	assert.Equal(t, 1, b.Subscribers("episode.step"))

	require.NoError(t, b.Publish(NewEvent("episode.step", "test", 1)))
	require.NoError(t, b.Publish(NewEvent("episode.started", "test", 2)))
	assert.Equal(t, []any{1}, got)
}

func TestDeliveryOrderAndErrorJoin(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	var order []string

	for _, name := range []string{"first", "second", "third"} {
		_, err := b.Subscribe("x", func(Event) error {
			order = append(order, name)
			switch name {
			case "first":
				return errA
			case "third":
				return errB
			}
			return nil
		})
		require.NoError(t, err)
	}

	err := b.Publish(NewEvent("x", "test", nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("x", func(Event) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive())
	assert.Zero(t, b.Subscribers("x"))

	require.NoError(t, b.Publish(NewEvent("x", "test", nil)))
	assert.Zero(t, calls)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestNilHandler(t *testing.T) {
	_, err := New().Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}
