// Package notify is the side-effect port for committed mints. Sinks
// are invoked after the transaction commits and must never block it.
package notify

import (
	"sync"

	"github.com/google/logger"

	"luckymint/internal/models"
)

// Sink receives one record per committed mint, in commit order.
type Sink interface {
	Append(record models.MintRecord)
}

// LogSink writes each record to the process log.
type LogSink struct{}

func (LogSink) Append(record models.MintRecord) {
	logger.Infof("mint committed: participant=%s round=%s probability=%d amount=%d jackpot=%t combo=%d",
		record.ParticipantID, record.RoundID, record.Probability, record.Amount, record.IsJackpot, record.Combo)
}

// MemorySink keeps the most recent records for the history endpoint.
type MemorySink struct {
	mu      sync.RWMutex
	limit   int
	records []models.MintRecord
}

// NewMemorySink creates a sink that retains at most limit records.
func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 100
	}
	return &MemorySink{limit: limit}
}

func (s *MemorySink) Append(record models.MintRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if len(s.records) > s.limit {
		s.records = s.records[len(s.records)-s.limit:]
	}
}

// Recent returns the retained records, oldest first.
func (s *MemorySink) Recent() []models.MintRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MintRecord, len(s.records))
	copy(out, s.records)
	return out
}

type multiSink []Sink

func (m multiSink) Append(record models.MintRecord) {
	for _, s := range m {
		s.Append(record)
	}
}

// Multi fans one record out to several sinks.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}
