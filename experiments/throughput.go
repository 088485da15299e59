package experiments

import (
	"sort"

	"pursuit/experiments/metrics"
	"pursuit/searcher"
)

// DepthSweep runs the given searcher at every depth from 1 to maxDepth
// against the same pursuers, to relate search cost to playing strength.
func DepthSweep(kind searcher.Kind, pursuer string, pursuers, maxDepth int) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		configs = append(configs, metrics.AgentConfig{
			ID:       depth,
			Seeker:   string(kind),
			Pursuer:  pursuer,
			Pursuers: pursuers,
			Depth:    depth,
		})
	}
	return configs
}

// Throughput is the search work of one algorithm over an experiment.
type Throughput struct {
	Algorithm      string
	Decisions      int
	Nodes          int
	NodesPerSecond float64
}

// SummarizeThroughput aggregates move records per algorithm,
// sorted by algorithm name.
func SummarizeThroughput(records []metrics.MoveRecord) []Throughput {
	byAlgorithm := map[string]*Throughput{}
	seconds := map[string]float64{}
	for _, record := range records {
		if record.Algorithm == "" {
			continue
		}
		t, ok := byAlgorithm[record.Algorithm]
		if !ok {
			t = &Throughput{Algorithm: record.Algorithm}
			byAlgorithm[record.Algorithm] = t
		}
		t.Decisions++
		t.Nodes += record.Nodes
		seconds[record.Algorithm] += record.Duration.Seconds()
	}

	summary := make([]Throughput, 0, len(byAlgorithm))
	for algorithm, t := range byAlgorithm {
		if seconds[algorithm] > 0 {
			t.NodesPerSecond = float64(t.Nodes) / seconds[algorithm]
		}
		summary = append(summary, *t)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Algorithm < summary[j].Algorithm
	})
	return summary
}
