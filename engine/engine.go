// Package engine runs the gesture-to-workspace pipeline: it feeds touch
// frames into the tracker, turns completed swipes into workspace switches,
// and exposes the operations the control API and CLI call on a running
// instance.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/aeroswipe/aeroswipe/aerospace"
	"github.com/aeroswipe/aeroswipe/config"
	"github.com/aeroswipe/aeroswipe/gesture"
	"github.com/aeroswipe/aeroswipe/utils"
	"github.com/aeroswipe/aeroswipe/workspace"
)

// Event is published to listeners when a switch is attempted or
// connectivity changes.
type Event struct {
	Type      string    `json:"type"` // "switch" or "connectivity"
	Direction string    `json:"direction,omitempty"`
	Error     string    `json:"error,omitempty"`
	Connected bool      `json:"connected"`
	Time      time.Time `json:"time"`
}

// Listener receives engine events. Listeners must not block.
type Listener func(Event)

// Status is the observable state reported over the control API.
type Status struct {
	Connected        bool    `json:"connected"`
	ServerVersion    string  `json:"serverVersion,omitempty"`
	SocketPath       string  `json:"socketPath"`
	SwipeThreshold   float64 `json:"swipeThreshold"`
	NaturalSwipe     bool    `json:"naturalSwipe"`
	WrapAround       bool    `json:"wrapAround"`
	SkipEmpty        bool    `json:"skipEmpty"`
	KeyboardOrdering bool    `json:"keyboardOrdering"`
}

// Engine owns the pipeline. Frame processing is single-threaded: Run
// consumes frames on one goroutine and switch round trips execute inline
// on it. Control-API triggers share the switch mutex with that goroutine,
// so at most one switch is ever in flight.
type Engine struct {
	cfg      *config.Config
	client   *aerospace.Client
	selector *workspace.Selector
	tracker  *gesture.Tracker

	switchMu sync.Mutex

	listenerMu sync.Mutex
	listeners  []Listener
}

func New(cfg *config.Config, client *aerospace.Client) *Engine {
	e := &Engine{
		cfg:      cfg,
		client:   client,
		selector: workspace.NewSelector(client, cfg),
	}
	classifier := gesture.NewClassifier(cfg, e.handleSwipe)
	e.tracker = gesture.NewTracker(classifier)
	return e
}

// Subscribe registers a listener for switch and connectivity events.
func (e *Engine) Subscribe(l Listener) {
	e.listenerMu.Lock()
	defer e.listenerMu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Engine) publish(ev Event) {
	ev.Time = time.Now()
	ev.Connected = e.client.Connected()

	e.listenerMu.Lock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.listenerMu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// Run consumes touch frames until the channel closes or the context is
// cancelled.
func (e *Engine) Run(ctx context.Context, frames <-chan []gesture.Touch) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-frames:
			if !ok {
				return nil
			}
			e.tracker.IngestFrame(frame)
		}
	}
}

// handleSwipe is the classifier's completion callback. Gesture-triggered
// switch failures are logged and discarded; there is no user-facing error
// surface for them.
func (e *Engine) handleSwipe(d gesture.Direction) {
	dir := workspace.Previous
	if d == gesture.DirectionNext {
		dir = workspace.Next
	}
	if err := e.trigger(dir); err != nil {
		utils.Warn("swipe %s dropped: %v", d, err)
	}
}

// TriggerNext switches to the next workspace on the ordering ring.
func (e *Engine) TriggerNext() error {
	return e.trigger(workspace.Next)
}

// TriggerPrevious switches to the previous workspace on the ordering ring.
func (e *Engine) TriggerPrevious() error {
	return e.trigger(workspace.Previous)
}

func (e *Engine) trigger(dir workspace.Direction) error {
	e.switchMu.Lock()
	err := e.selector.Switch(dir)
	e.switchMu.Unlock()

	ev := Event{Type: "switch", Direction: dir.String()}
	if err != nil {
		ev.Error = err.Error()
	}
	e.publish(ev)
	return err
}

// Connect establishes (or with force, replaces) the daemon connection and
// publishes the resulting connectivity state.
func (e *Engine) Connect(force bool) error {
	err := e.client.Connect(force)

	ev := Event{Type: "connectivity"}
	if err != nil {
		ev.Error = err.Error()
	}
	e.publish(ev)
	return err
}

// Status reports connection state and the effective configuration.
func (e *Engine) Status() Status {
	return Status{
		Connected:        e.client.Connected(),
		ServerVersion:    e.client.ServerVersion(),
		SocketPath:       e.client.Path(),
		SwipeThreshold:   e.cfg.SwipeThreshold(),
		NaturalSwipe:     e.cfg.NaturalSwipe(),
		WrapAround:       e.cfg.WrapAround(),
		SkipEmpty:        e.cfg.SkipEmpty(),
		KeyboardOrdering: e.cfg.KeyboardOrdering(),
	}
}

// Close tears down the daemon connection.
func (e *Engine) Close() error {
	return e.client.Close()
}
