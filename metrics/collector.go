// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package metrics

import (
	"sync"

	"github.com/ezrec/lumen/isa"
)

// Sample is one queued record.
type Sample struct {
	Fault   bool
	Level   isa.Level
	Class   isa.Class
	Targets []isa.Target
}

// Collector funnels samples from any number of producers to a single
// consumer goroutine that owns the updates to an Aggregator.
type Collector struct {
	agg     *Aggregator
	samples chan Sample
	done    chan struct{}

	mutex  sync.RWMutex
	closed bool
}

var _ Recorder = (*Collector)(nil)

// NewCollector starts a collector draining into agg. depth is the
// channel buffer size.
func NewCollector(agg *Aggregator, depth int) (c *Collector) {
	c = &Collector{
		agg:     agg,
		samples: make(chan Sample, depth),
		done:    make(chan struct{}),
	}

	go c.drain()

	return
}

func (c *Collector) drain() {
	defer close(c.done)

	for sample := range c.samples {
		if sample.Fault {
			c.agg.Fault()
			continue
		}
		// Level was checked in Record.
		_ = c.agg.Record(sample.Level, sample.Class, sample.Targets)
	}
}

// Submit queues a sample. Blocks while the buffer is full.
func (c *Collector) Submit(sample Sample) (err error) {
	if !sample.Fault && (sample.Level < isa.LEVEL_NATIVE || sample.Level > isa.LEVEL_EMULATED) {
		err = ErrLevelUnrecorded
		return
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.closed {
		err = ErrCollectorClosed
		return
	}

	c.samples <- sample
	return
}

// Record queues a successful lowering.
func (c *Collector) Record(level isa.Level, class isa.Class, produced []isa.Target) error {
	return c.Submit(Sample{Level: level, Class: class, Targets: produced})
}

// Fault queues a failed lowering. Faults reported after Close are dropped,
// as Recorder has no error return for them.
func (c *Collector) Fault() {
	_ = c.Submit(Sample{Fault: true})
}

// Close stops accepting samples and waits until every queued sample has
// reached the aggregator.
func (c *Collector) Close() {
	c.mutex.Lock()
	if !c.closed {
		c.closed = true
		close(c.samples)
	}
	c.mutex.Unlock()

	<-c.done
}
