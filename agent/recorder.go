package agent

import (
	"golang.org/x/exp/rand"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

// Experience is one seeker transition as seen by a learned policy: the
// state it acted in, its action, the state it acted in next and the score
// gained in between.
type Experience struct {
	State     game.StateHash
	Action    game.Direction
	NextState game.StateHash
	Reward    float64
	Terminal  bool
}

// ReplayMemory is a bounded buffer of experiences. When full, the oldest
// experience is overwritten.
type ReplayMemory struct {
	buffer   []Experience
	next     int
	capacity int
}

func NewReplayMemory(capacity int) *ReplayMemory {
	if capacity < 1 {
		capacity = 1
	}
	return &ReplayMemory{buffer: make([]Experience, 0, capacity), capacity: capacity}
}

func (m *ReplayMemory) Push(e Experience) {
	if len(m.buffer) < m.capacity {
		m.buffer = append(m.buffer, e)
		return
	}
	m.buffer[m.next] = e
	m.next = (m.next + 1) % m.capacity
}

func (m *ReplayMemory) Len() int {
	return len(m.buffer)
}

// Sample draws n distinct experiences, or all of them if fewer are stored.
func (m *ReplayMemory) Sample(n int, rng *rand.Rand) []Experience {
	if n > len(m.buffer) {
		n = len(m.buffer)
	}
	indices := rng.Perm(len(m.buffer))[:n]
	batch := make([]Experience, n)
	for i, index := range indices {
		batch[i] = m.buffer[index]
	}
	return batch
}

// Recorder wraps an agent and stores its transitions in a replay memory,
// accumulating the score change of every turn between two of its actions.
type Recorder struct {
	Agent
	Memory *ReplayMemory

	pending *Experience
}

func NewRecorder(agent Agent, memory *ReplayMemory) *Recorder {
	return &Recorder{Agent: agent, Memory: memory}
}

func (r *Recorder) FindAction(state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	action, metric, err := r.Agent.FindAction(state)
	if err != nil {
		return action, metric, err
	}
	hash := state.Hash()
	if r.pending != nil {
		r.pending.NextState = hash
		r.Memory.Push(*r.pending)
	}
	r.pending = &Experience{State: hash, Action: action}
	return action, metric, nil
}

func (r *Recorder) Observe(state *game.GameState, reward float64, terminal bool) {
	if observer, ok := r.Agent.(Observer); ok {
		observer.Observe(state, reward, terminal)
	}
	if r.pending == nil {
		return
	}
	r.pending.Reward += reward
	if terminal {
		r.pending.NextState = state.Hash()
		r.pending.Terminal = true
		r.Memory.Push(*r.pending)
		r.pending = nil
	}
}

func (r *Recorder) Register(state *game.GameState) error {
	r.pending = nil
	if registrar, ok := r.Agent.(Registrar); ok {
		return registrar.Register(state)
	}
	return nil
}

// Final stores the last transition of a game cut short by the move cap.
func (r *Recorder) Final(state *game.GameState) {
	if r.pending != nil {
		r.pending.NextState = state.Hash()
		r.Memory.Push(*r.pending)
		r.pending = nil
	}
	if finalizer, ok := r.Agent.(Finalizer); ok {
		finalizer.Final(state)
	}
}

func (r *Recorder) Algorithm() string {
	return Algorithm(r.Agent)
}
