package storage

import (
	"sync"
	"time"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

// MemoryStore implements Store in process memory. Used by tests and by
// deployments that do not want an audit trail on disk.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]*AcknowledgementRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]*AcknowledgementRecord),
	}
}

// SaveAcknowledgement appends one acknowledgement submission
func (s *MemoryStore) SaveAcknowledgement(ack *types.Acknowledgement, receivedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[ack.RedispatchOrderID] = append(s.records[ack.RedispatchOrderID], &AcknowledgementRecord{
		Acknowledgement: *ack,
		ReceivedAt:      receivedAt,
	})
	return nil
}

// ListAcknowledgements returns every recorded submission for the order,
// oldest first
func (s *MemoryStore) ListAcknowledgements(orderID string) ([]*AcknowledgementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*AcknowledgementRecord, len(s.records[orderID]))
	copy(records, s.records[orderID])
	return records, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
