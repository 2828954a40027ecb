package nn

import "github.com/loom-ml/loom/tensor"

// State is the shared training state for one run.
//
// The driver creates exactly one State per training run and hands the same
// pointer to every layer, optimizer and initializer via OnState. No component
// retains a copy; the pointer itself is the single source of truth for the
// duration of the run. The driver mutates it between setup phases, and run
// scoped fields such as Step may be advanced by optimizers during training.
// A single logical thread drives the whole sequence, so there is no locking.
type State struct {
	// CurrentLayerInputShape is the shape of the tensor entering the layer
	// currently being initialized. The driver writes it immediately before
	// invoking that layer's OnInitializer; layers and initializers only
	// read it.
	CurrentLayerInputShape tensor.Shape

	// Step is the run-global update step count, shared by all optimizers.
	Step int
}

// Stateful is the embeddable attachment point for the shared State.
//
// Layers, optimizers and initializers embed Stateful to satisfy the OnState
// half of their contracts.
type Stateful struct {
	state *State
}

// OnState attaches the shared training state. Called once by the driver (or
// by the owning layer, for optimizers) before any other setup phase.
func (s *Stateful) OnState(state *State) {
	s.state = state
}

// State returns the attached shared state, or nil before OnState.
func (s *Stateful) State() *State {
	return s.state
}
