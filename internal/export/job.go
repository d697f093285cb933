package export

import "sync"

// State is the lifecycle phase of an export job.
type State string

const (
	StateIdle             State = "idle"
	StateCollectingInputs State = "collecting_inputs"
	StateDispatching      State = "dispatching"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Job tracks the lifecycle of exports for a single user. Each Begin call
// bumps the generation; completions carrying an older generation are stale
// and must not overwrite the state of the newer attempt.
type Job struct {
	mu         sync.Mutex
	state      State
	reason     string
	generation uint64
}

// NewJob returns a job in the idle state.
func NewJob() *Job {
	return &Job{state: StateIdle}
}

// Begin starts a new attempt and returns its generation token.
// Any in-flight older attempt becomes stale immediately.
func (j *Job) Begin() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.generation++
	j.state = StateCollectingInputs
	j.reason = ""
	return j.generation
}

// Dispatch moves the attempt into the dispatching phase.
// It reports false when the token is stale.
func (j *Job) Dispatch(gen uint64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if gen != j.generation || j.state != StateCollectingInputs {
		return false
	}
	j.state = StateDispatching
	return true
}

// Succeed marks the attempt as finished. Stale tokens are ignored.
func (j *Job) Succeed(gen uint64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if gen != j.generation || j.state != StateDispatching {
		return false
	}
	j.state = StateSucceeded
	return true
}

// Fail marks the attempt as failed with a reason. Stale tokens are ignored.
func (j *Job) Fail(gen uint64, reason string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if gen != j.generation {
		return false
	}
	if j.state != StateCollectingInputs && j.state != StateDispatching {
		return false
	}
	j.state = StateFailed
	j.reason = reason
	return true
}

// Snapshot returns the current state, failure reason and generation.
func (j *Job) Snapshot() (State, string, uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state, j.reason, j.generation
}
