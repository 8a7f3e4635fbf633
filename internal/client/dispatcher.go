package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/wishlist-backend/internal/render"
)

// Handler reacts to a card control.
type Handler func(ctx context.Context, id int64) error

type bindingKey struct {
	action render.Action
	id     int64
}

// Dispatcher is the event table of the card controls, keyed by (action, id).
type Dispatcher struct {
	ctrl *Controller

	mu       sync.RWMutex
	handlers map[bindingKey]Handler
}

func NewDispatcher(ctrl *Controller) *Dispatcher {
	return &Dispatcher{ctrl: ctrl, handlers: make(map[bindingKey]Handler)}
}

// Register binds h to (action, id), replacing any previous binding.
func (d *Dispatcher) Register(action render.Action, id int64, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[bindingKey{action: action, id: id}] = h
}

// Bind rebuilds the table from the bindings of cards, wiring each action to
// the controller. Bindings of cards no longer shown are dropped.
func (d *Dispatcher) Bind(cards []render.Card) {
	table := make(map[bindingKey]Handler, len(cards)*len(render.Actions))
	for _, card := range cards {
		for _, b := range card.Bindings {
			if h := d.controllerHandler(b.Action); h != nil {
				table[bindingKey{action: b.Action, id: b.ID}] = h
			}
		}
	}
	d.mu.Lock()
	d.handlers = table
	d.mu.Unlock()
}

// Dispatch runs the handler bound to (action, id).
func (d *Dispatcher) Dispatch(ctx context.Context, action render.Action, id int64) error {
	d.mu.RLock()
	h, ok := d.handlers[bindingKey{action: action, id: id}]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNoHandler, action, id)
	}
	return h(ctx, id)
}

func (d *Dispatcher) controllerHandler(action render.Action) Handler {
	switch action {
	case render.ActionToggle:
		return d.ctrl.Toggle
	case render.ActionEdit:
		return func(_ context.Context, id int64) error {
			_, err := d.ctrl.BeginEdit(id)
			return err
		}
	case render.ActionDelete:
		return func(_ context.Context, id int64) error {
			d.ctrl.RequestDelete(id)
			return nil
		}
	}
	return nil
}
