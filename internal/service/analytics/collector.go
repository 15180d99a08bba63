// Package analytics provides an in-process counter collector for pipeline
// throughput. It is explicitly constructed and injected into services —
// there is no package-level instance.
package analytics

import "sync"

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	SignalsIngested   int64
	EntriesSuggested  int64
	EntriesApproved   int64
	EntriesRejected   int64
	InvoicesGenerated int64
	LineItemsCreated  int64
	CentsBilled       int64
}

// Collector accumulates pipeline counters. Safe for concurrent use.
type Collector struct {
	mu sync.Mutex
	s  Snapshot
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordIngestion adds the results of one signal-ingestion run.
func (c *Collector) RecordIngestion(signals, suggested int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.SignalsIngested += int64(signals)
	c.s.EntriesSuggested += int64(suggested)
}

// RecordReview counts one approve or reject transition.
func (c *Collector) RecordReview(approved bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if approved {
		c.s.EntriesApproved++
	} else {
		c.s.EntriesRejected++
	}
}

// RecordInvoice adds the results of one invoice generation run.
func (c *Collector) RecordInvoice(lineItems, subtotalCents int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.InvoicesGenerated++
	c.s.LineItemsCreated += int64(lineItems)
	c.s.CentsBilled += int64(subtotalCents)
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}
