package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type UIState string

const (
	UIStateFull         UIState = "full"
	UIStateHub          UIState = "hub"
	UIStateListening    UIState = "listening"
	UIStateListeningHub UIState = "listening-hub"
)

// StateTransition is the payload of a state-changed event.
type StateTransition struct {
	From UIState `json:"from"`
	To   UIState `json:"to"`
}

// Animations are the presentation hooks a transition drives concurrently;
// each returns once its animation has finished. Nil hooks are skipped so
// the manager runs headless in tests.
type Animations struct {
	BoardLayout   func(ctx context.Context, to UIState) error
	ShowHUD       func(ctx context.Context) error
	HideHUD       func(ctx context.Context) error
	ShowListening func(ctx context.Context) error
	HideListening func(ctx context.Context) error
	ResetMic      func()
}

// StateManager mediates UI visibility states (full board, hub, listening
// panel). It holds no scoring or turn data; its job is to keep at most
// one transition in flight and to sequence the entry/exit animations.
//
// "listening" is a scripted two-step state: once its animations finish it
// chains straight into "listening-hub".
type StateManager struct {
	logger     *slog.Logger
	events     *Bus
	animations Animations

	mu             sync.Mutex
	current        UIState
	hudShown       bool
	listeningShown bool

	subscriptions []int
}

func NewStateManager(logger *slog.Logger, events *Bus, animations Animations) *StateManager {
	manager := &StateManager{
		logger:     logger.With("component", "state-manager"),
		events:     events,
		animations: animations,
		current:    UIStateFull,
	}

	manager.subscriptions = append(manager.subscriptions,
		events.Subscribe(EventMicEnable, func(Event) { manager.transitionFromEvent(UIStateListening) }),
		events.Subscribe(EventMicDisable, func(Event) { manager.transitionFromEvent(UIStateHub) }),
		events.Subscribe(EventBackButtonClicked, func(Event) { manager.transitionFromEvent(UIStateFull) }),
		events.Subscribe(EventHubShow, func(Event) { manager.transitionFromEvent(UIStateHub) }),
	)

	return manager
}

func (that *StateManager) CurrentState() UIState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.current
}

func (that *StateManager) transitionFromEvent(to UIState) {
	if err := that.TransitionTo(context.Background(), to); err != nil {
		that.logger.Error("transition failed", "to", to, "error", err)
	}
}

// TransitionTo runs the animations for the target state and records it.
// A no-op when already in that state. The internal lock is held for the
// whole transition, which is what keeps only one in flight.
func (that *StateManager) TransitionTo(ctx context.Context, to UIState) error {
	that.mu.Lock()

	if that.current == to {
		that.mu.Unlock()
		return nil
	}

	from := that.current

	if err := that.executeTransitionLocked(ctx, from, to); err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to transition from %s to %s: %w", from, to, err)
	}

	that.current = to
	that.mu.Unlock()

	that.events.Publish(EventStateChanged, StateTransition{From: from, To: to})

	// listening auto-chains into listening-hub once its animations finish.
	if to == UIStateListening {
		return that.TransitionTo(ctx, UIStateListeningHub)
	}

	return nil
}

func (that *StateManager) executeTransitionLocked(ctx context.Context, from, to UIState) error {
	var hooks []func(ctx context.Context) error

	if that.animations.BoardLayout != nil {
		hooks = append(hooks, func(ctx context.Context) error {
			return that.animations.BoardLayout(ctx, to)
		})
	}

	// HUD is visible only in the hub state.
	if to == UIStateHub {
		if !that.hudShown && that.animations.ShowHUD != nil {
			hooks = append(hooks, that.animations.ShowHUD)
		}
		that.hudShown = true
	} else {
		if that.hudShown && that.animations.HideHUD != nil {
			hooks = append(hooks, that.animations.HideHUD)
		}
		that.hudShown = false
	}

	// Listening panel is visible in both listening states.
	if to == UIStateListening || to == UIStateListeningHub {
		if !that.listeningShown && that.animations.ShowListening != nil {
			hooks = append(hooks, that.animations.ShowListening)
		}
		that.listeningShown = true
	} else {
		if that.listeningShown && that.animations.HideListening != nil {
			hooks = append(hooks, that.animations.HideListening)
		}
		that.listeningShown = false

		if (from == UIStateListening || from == UIStateListeningHub) && that.animations.ResetMic != nil {
			that.animations.ResetMic()
		}
	}

	return runConcurrently(ctx, hooks)
}

// runConcurrently waits for every hook and reports the first error.
func runConcurrently(ctx context.Context, hooks []func(ctx context.Context) error) error {
	if len(hooks) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(hooks))

	for _, hook := range hooks {
		wg.Add(1)
		go func(hook func(ctx context.Context) error) {
			defer wg.Done()
			if err := hook(ctx); err != nil {
				errs <- err
			}
		}(hook)
	}

	wg.Wait()
	close(errs)

	return <-errs
}

// Destroy unregisters the manager's bus subscriptions.
func (that *StateManager) Destroy() {
	for _, id := range that.subscriptions {
		that.events.Unsubscribe(id)
	}
	that.subscriptions = nil
}
