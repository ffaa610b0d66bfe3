package mlp

import (
	"fmt"
	"math"
)

// Reason is why a training run stopped.
type Reason int

// Termination reasons.
const (
	ReasonNone Reason = iota // not terminated
	Converged                // average error fell below the threshold
	Exhausted                // iteration budget used up
	Diverged                 // NaN or Inf appeared in the error or weights
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Diverged:
		return "diverged"
	default:
		return "none"
	}
}

// State is the lifecycle stage of a Trainer.
//
// Untrained → Training → {Converged, Exhausted, Diverged}. Terminal states
// never change.
type State int

// Trainer states.
const (
	StateUntrained State = iota
	StateTraining
	StateConverged
	StateExhausted
	StateDiverged
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUntrained:
		return "untrained"
	case StateTraining:
		return "training"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateDiverged:
		return "diverged"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EpochStats summarizes one completed epoch.
type EpochStats struct {
	Iteration    int     // epochs completed so far, starting at 1
	AverageError float64 // total case error / (outputs · cases)
}

// Observer is notified after every epoch.
type Observer interface {
	OnEpoch(EpochStats)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(EpochStats)

// OnEpoch calls f.
func (f ObserverFunc) OnEpoch(s EpochStats) { f(s) }

// CaseResult is the network's answer for one case after training.
type CaseResult struct {
	Input    []float64
	Expected []float64
	Output   []float64
	Error    float64
}

// Result is the outcome of a training run.
type Result struct {
	Cases        []CaseResult
	AverageError float64
	Iterations   int
	Reason       Reason
}

// Trainer runs the epoch loop over a fixed, ordered set of cases.
//
// A Trainer owns its activation buffer and scratch space and mutates the
// Weights it was given in place. It is not safe for concurrent use.
//
// Example:
//
//	w, _ := mlp.NewRandomWeights(topo, rand.New(rand.NewSource(hp.Seed)), hp.MinRand, hp.MaxRand)
//	trainer, err := mlp.NewTrainer(w, hp, cases)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := trainer.Run()
type Trainer struct {
	w        *Weights
	hp       Hyperparameters
	cases    []TrainingCase
	acts     *Activations
	sc       *Scratch
	observer Observer
	state    State
}

// NewTrainer validates its inputs and returns an untrained Trainer.
func NewTrainer(w *Weights, hp Hyperparameters, cases []TrainingCase) (*Trainer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil weights", ErrShapeMismatch)
	}
	if err := hp.Validate(); err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, ErrNoCases
	}
	topo := w.Topology()
	for n, c := range cases {
		if err := c.Check(topo); err != nil {
			return nil, fmt.Errorf("case %d: %w", n, err)
		}
	}
	return &Trainer{
		w:     w,
		hp:    hp,
		cases: cases,
		acts:  NewActivations(topo),
		sc:    NewScratch(topo),
		state: StateUntrained,
	}, nil
}

// SetObserver installs an observer for epoch statistics.
func (t *Trainer) SetObserver(o Observer) {
	t.observer = o
}

// State returns the current lifecycle state.
func (t *Trainer) State() State {
	return t.state
}

// Weights returns the weights being trained.
func (t *Trainer) Weights() *Weights {
	return t.w
}

// Run trains until the average error drops below the threshold, the
// iteration budget is exceeded, or the numbers diverge.
//
// The budget check is iterations > MaxIterations, so a run that never
// converges performs MaxIterations+1 epochs.
func (t *Trainer) Run() (*Result, error) {
	if t.state != StateUntrained {
		return nil, fmt.Errorf("%w: state is %s", ErrAlreadyTrained, t.state)
	}
	t.state = StateTraining

	var (
		iterations int
		avg        float64
		reason     Reason
	)
	denom := float64(t.w.Topology().Output * len(t.cases))
	for reason == ReasonNone {
		avg = t.epoch() / denom
		iterations++

		if t.observer != nil {
			t.observer.OnEpoch(EpochStats{Iteration: iterations, AverageError: avg})
		}

		switch {
		case math.IsNaN(avg) || math.IsInf(avg, 0) || !t.w.IsFinite():
			reason = Diverged
		case avg < t.hp.ErrorThreshold:
			reason = Converged
		case iterations > t.hp.MaxIterations:
			reason = Exhausted
		}
	}
	t.state = stateFor(reason)

	return &Result{
		Cases:        Evaluate(t.w, t.cases),
		AverageError: avg,
		Iterations:   iterations,
		Reason:       reason,
	}, nil
}

// epoch runs one online pass over every case in order and returns the
// summed post-update case error.
func (t *Trainer) epoch() float64 {
	var total float64
	for _, c := range t.cases {
		t.acts.SetInput(c.Input)
		Propagate(t.acts, t.w, c.Expected, t.sc)
		total += TrainCase(t.acts, t.w, t.sc, c.Expected, t.hp.LearningRate)
	}
	return total
}

func stateFor(r Reason) State {
	switch r {
	case Converged:
		return StateConverged
	case Exhausted:
		return StateExhausted
	default:
		return StateDiverged
	}
}

// Train is a convenience wrapper around NewTrainer and Run.
func Train(w *Weights, hp Hyperparameters, cases []TrainingCase, observer Observer) (*Result, error) {
	t, err := NewTrainer(w, hp, cases)
	if err != nil {
		return nil, err
	}
	t.SetObserver(observer)
	return t.Run()
}

// Evaluate runs a plain forward pass for every case and reports the
// outputs and per-case errors. Weights are not modified.
func Evaluate(w *Weights, cases []TrainingCase) []CaseResult {
	acts := NewActivations(w.Topology())
	results := make([]CaseResult, len(cases))
	for n, c := range cases {
		acts.SetInput(c.Input)
		Run(acts, w)
		out := append([]float64(nil), acts.Output()...)
		results[n] = CaseResult{
			Input:    c.Input,
			Expected: c.Expected,
			Output:   out,
			Error:    CaseError(c.Expected, out),
		}
	}
	return results
}
