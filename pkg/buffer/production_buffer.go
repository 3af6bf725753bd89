/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package buffer

import (
	"sync"

	"driftwatch/pkg/dto/monitor"
)

const DefaultCapacity = 10000

// ProductionBuffer is the bounded FIFO store of recently observed production
// records. It mirrors a rolling monitoring window, so it is deliberately not
// persisted across restarts. Appends and snapshots share one mutex; snapshots
// are copied out so the statistical computation never runs under the lock.
type ProductionBuffer struct {
	mu       sync.Mutex
	records  []monitor.ProductionRecord
	capacity int
}

func NewProductionBuffer(capacity int) *ProductionBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ProductionBuffer{
		records:  make([]monitor.ProductionRecord, 0, capacity),
		capacity: capacity,
	}
}

func (b *ProductionBuffer) Append(record monitor.ProductionRecord) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendLocked(record)
	return len(b.records)
}

// AppendBatch behaves like sequential Append calls but holds the lock for the
// whole batch so an in-flight Window snapshot never observes a torn batch.
func (b *ProductionBuffer) AppendBatch(records []monitor.ProductionRecord) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, record := range records {
		b.appendLocked(record)
	}
	return len(b.records)
}

func (b *ProductionBuffer) appendLocked(record monitor.ProductionRecord) {
	b.records = append(b.records, record)
	if len(b.records) > b.capacity {
		// FIFO eviction, oldest first
		overflow := len(b.records) - b.capacity
		b.records = append(b.records[:0:0], b.records[overflow:]...)
	}
}

// Window returns the most recent n records oldest-first as a point-in-time
// copy. n <= 0 returns the entire buffer.
func (b *ProductionBuffer) Window(n int) []monitor.ProductionRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := 0
	if n > 0 && n < len(b.records) {
		start = len(b.records) - n
	}
	snapshot := make([]monitor.ProductionRecord, len(b.records)-start)
	copy(snapshot, b.records[start:])
	return snapshot
}

func (b *ProductionBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = b.records[:0]
}

func (b *ProductionBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

func (b *ProductionBuffer) Capacity() int {
	return b.capacity
}
