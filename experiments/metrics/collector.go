package metrics

import (
	"time"

	"github.com/google/uuid"
)

// SearchMetric describes the work done to choose one action.
type SearchMetric struct {
	Algorithm   string
	Depth       int
	Duration    time.Duration
	Nodes       int // successor states generated
	Evaluations int
	Prunes      int
}

type MoveMetric struct {
	Step   int
	Agent  int // agent index, 0 is the seeker
	Action string
	Score  int // score after the move
	SearchMetric
}

type GameMetric struct {
	Win        bool
	Lose       bool
	Score      int
	FoodLeft   int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// GameRecord is one completed game, as consumed by result logs.
type GameRecord struct {
	ID        uuid.UUID
	Config    int // AgentConfig.ID
	Algorithm string
	Layout    string
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameRecord.ID
	MoveMetric
}

// AgentConfig is one seeker/pursuer line-up of an experiment.
type AgentConfig struct {
	ID       int
	Seeker   string
	Pursuer  string
	Pursuers int
	Depth    int
}

type Collector interface {
	Start(algorithm string, depth int)
	AddNode()
	AddEvaluation()
	AddPrune()
	Complete() SearchMetric
}

type collector struct {
	algorithm   string
	depth       int
	startTime   time.Time
	nodes       int
	evaluations int
	prunes      int
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(algorithm string, depth int) {
	*m = collector{algorithm: algorithm, depth: depth, startTime: time.Now()}
}

func (m *collector) AddNode()       { m.nodes++ }
func (m *collector) AddEvaluation() { m.evaluations++ }
func (m *collector) AddPrune()      { m.prunes++ }

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:   m.algorithm,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       m.nodes,
		Evaluations: m.evaluations,
		Prunes:      m.prunes,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth int) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddEvaluation()                    {}
func (m *dummyCollector) AddPrune()                         {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
