package effect

import "context"

// PerformFunc is the function a PolicyFunc calls to perform an effect and
// suspend until its result is delivered. It is the in-process analogue of
// a generator's `yield`: the call blocks until Runtime.Step resolves the
// effect and resumes the policy with the result (or an error).
type PerformFunc func(Effect) (any, error)

// PolicyFunc is a component's entire execution trace expressed as a plain
// Go function: it performs effects through the perform callback it is
// given and returns a final value (or an error) when done. Go has no
// native generators, so Policy realizes the "restartable, cooperative
// producer of effects-or-final-value" contract with a goroutine and a pair
// of unbuffered channels — the standard Go substitute for Python's
// send()-based generator coroutine.
type PolicyFunc func(perform PerformFunc) (any, error)

// Signal is what Runtime.Step feeds back into a suspended Policy: either
// the result of the previously yielded effect, or the error a handler
// produced for it. Failures propagate into the policy's resume point this
// way rather than by re-raising on the runtime's side.
type Signal struct {
	Value any
	Err   error
}

// step is what a Policy goroutine yields to its driver: either a pending
// Effect, or the final outcome once the PolicyFunc has returned.
type step struct {
	effect *Effect
	value  any
	err    error
	done   bool
}

// Policy is a restartable, cooperative producer of effects or a final
// value. Each call to Resume drives it forward exactly one suspension
// point.
type Policy struct {
	toPolicy   chan Signal
	fromPolicy chan step
	started    bool
	finished   bool
}

// NewPolicy starts fn running on its own goroutine, suspended at its first
// perform call (or completed immediately, if fn never performs).
func NewPolicy(fn PolicyFunc) *Policy {
	p := &Policy{
		toPolicy:   make(chan Signal),
		fromPolicy: make(chan step),
	}

	perform := func(e Effect) (any, error) {
		p.fromPolicy <- step{effect: &e}
		sig := <-p.toPolicy
		return sig.Value, sig.Err
	}

	go func() {
		value, err := fn(perform)
		p.fromPolicy <- step{value: value, err: err, done: true}
	}()

	return p
}

// Resume sends sig into the policy (ignored on the very first call, which
// starts the policy from its beginning with no signal) and returns its
// next yielded step.
func (p *Policy) Resume(sig Signal) (resumed step) {
	if p.finished {
		return step{value: nil, err: nil, done: true}
	}
	if p.started {
		p.toPolicy <- sig
	}
	p.started = true
	s := <-p.fromPolicy
	if s.done {
		p.finished = true
	}
	return s
}

// Agent couples a spec descriptor and a mutable state value with a policy
// coroutine.
type Agent struct {
	Name        string
	Description string
	State       any

	policy *Policy
}

// NewAgent creates an Agent whose behavior is fn, run against the given
// initial state.
func NewAgent(name, description string, state any, fn PolicyFunc) *Agent {
	return &Agent{
		Name:        name,
		Description: description,
		State:       state,
		policy:      NewPolicy(fn),
	}
}

// Step drives the agent's policy forward by one suspension point under r:
// on the first call it resumes the policy from its start with no signal;
// on later calls it resumes with sig, the value (or error) produced for
// the effect returned by the previous Step. If the policy yields an
// effect, Step resolves it against r and returns the resolved value as a
// non-final result; if the policy completes, Step returns its final value
// with done=true.
func (r *Runtime) Step(ctx context.Context, agent *Agent, sig Signal) (value any, done bool, err error) {
	s := agent.policy.Resume(sig)
	if s.done {
		return s.value, true, s.err
	}
	result, resolveErr := r.Resolve(ctx, *s.effect)
	return result, false, resolveErr
}
