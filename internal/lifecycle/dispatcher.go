package lifecycle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Handler reacts to a lifecycle event. Returning an error aborts the unit of work.
type Handler func(ctx context.Context, ev *Event) error

type registration struct {
	name    string
	handler Handler
}

// Dispatcher invokes named handlers in registration order
type Dispatcher struct {
	regs map[Kind][]registration
	log  zerolog.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		regs: make(map[Kind][]registration),
		log:  log,
	}
}

// On appends a handler for kind under name
func (d *Dispatcher) On(kind Kind, name string, h Handler) {
	d.regs[kind] = append(d.regs[kind], registration{name: name, handler: h})
}

// Dispatch runs the handlers registered for ev.Kind and stops at the first error
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) error {
	for _, reg := range d.regs[ev.Kind] {
		d.log.Debug().
			Str("event", ev.Kind.String()).
			Str("handler", reg.name).
			Msg("dispatch")
		if err := reg.handler(ctx, ev); err != nil {
			return fmt.Errorf("%s %s: %w", ev.Kind, reg.name, err)
		}
	}
	return nil
}

// Registrations returns the handler names of kind in invocation order
func (d *Dispatcher) Registrations(kind Kind) []string {
	names := make([]string, 0, len(d.regs[kind]))
	for _, reg := range d.regs[kind] {
		names = append(names, reg.name)
	}
	return names
}
