package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsInRegistrationOrder(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	var calls []string

	d.On(Move, "publish.move", func(context.Context, *Event) error {
		calls = append(calls, "publish")
		return nil
	})
	d.On(Move, "routing.move", func(context.Context, *Event) error {
		calls = append(calls, "routing")
		return nil
	})
	d.On(Remove, "publish.remove", func(context.Context, *Event) error {
		calls = append(calls, "remove")
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), &Event{Kind: Move}))
	assert.Equal(t, []string{"publish", "routing"}, calls)
	assert.Equal(t, []string{"publish.move", "routing.move"}, d.Registrations(Move))
}

func TestDispatcher_StopsAtFirstError(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	boom := errors.New("boom")
	second := false

	d.On(Persist, "first", func(context.Context, *Event) error { return boom })
	d.On(Persist, "second", func(context.Context, *Event) error {
		second = true
		return nil
	})

	err := d.Dispatch(context.Background(), &Event{Kind: Persist})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "persist first")
	assert.False(t, second)
}

func TestDispatcher_NoHandlers(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	assert.NoError(t, d.Dispatch(context.Background(), &Event{Kind: Flush}))
	assert.Empty(t, d.Registrations(Flush))
}
