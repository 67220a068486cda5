package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.AddQuery()
	c.AddGeneration()
	c.AddGeneration()
	c.AddSimulation()
	c.AddThreatScan()
	c.AddRearranging()

	m := c.Complete()
	require.Equal(t, 1, m.Queries)
	require.Equal(t, 2, m.Generations)
	require.Equal(t, 1, m.Simulations)
	require.Equal(t, 1, m.ThreatScans)
	require.Equal(t, 1, m.Rearrangings)

	c.Start()
	require.Zero(t, c.Complete().Queries, "Start should reset the counters")
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.AddQuery()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 800, c.Complete().Queries)
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start()
	c.AddQuery()
	c.AddSimulation()
	require.Equal(t, EngineMetric{}, c.Complete())
}
