package metrics

import (
	"sync/atomic"
	"time"
)

// EngineMetric summarises the work the rules engine did over a span of time.
type EngineMetric struct {
	Duration     time.Duration
	Queries      int // Destination requests from callers
	Generations  int // Raw destination sets generated, threat scans included
	Simulations  int // Hypothetical boards built by the check filter
	ThreatScans  int // Commander threat evaluations
	Rearrangings int // Hypothetical forced-rearrangement drops
}

type GameMetric struct {
	Game       int
	Seed       uint64
	Winner     string
	Reason     string
	TotalTurns int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	EngineMetric
}

type PerftMetric struct {
	Depth     int
	Nodes     int
	Captures  int
	Drops     int
	Checks    int
	Checkmate int
	Duration  time.Duration
}

type Collector interface {
	Start()
	AddQuery()
	AddGeneration()
	AddSimulation()
	AddThreatScan()
	AddRearranging()
	Complete() EngineMetric
}

type collector struct {
	startTime    time.Time
	queries      atomic.Int64
	generations  atomic.Int64
	simulations  atomic.Int64
	threatScans  atomic.Int64
	rearrangings atomic.Int64
}

func NewCollector() Collector {
	c := &collector{}
	c.Start()
	return c
}

// Start resets the counters and the clock.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.queries.Store(0)
	m.generations.Store(0)
	m.simulations.Store(0)
	m.threatScans.Store(0)
	m.rearrangings.Store(0)
}

func (m *collector) AddQuery() {
	m.queries.Add(1)
}

func (m *collector) AddGeneration() {
	m.generations.Add(1)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddThreatScan() {
	m.threatScans.Add(1)
}

func (m *collector) AddRearranging() {
	m.rearrangings.Add(1)
}

func (m *collector) Complete() EngineMetric {
	return EngineMetric{
		Duration:     time.Since(m.startTime),
		Queries:      int(m.queries.Load()),
		Generations:  int(m.generations.Load()),
		Simulations:  int(m.simulations.Load()),
		ThreatScans:  int(m.threatScans.Load()),
		Rearrangings: int(m.rearrangings.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddQuery()              {}
func (m *dummyCollector) AddGeneration()         {}
func (m *dummyCollector) AddSimulation()         {}
func (m *dummyCollector) AddThreatScan()         {}
func (m *dummyCollector) AddRearranging()        {}
func (m *dummyCollector) Complete() EngineMetric { return EngineMetric{} }
