package storage

import (
	"time"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

// AcknowledgementRecord is one stored acknowledgement submission. Repeated
// submissions for the same order produce separate records.
type AcknowledgementRecord struct {
	Acknowledgement types.Acknowledgement
	ReceivedAt      time.Time
}

// Store defines the interface for the acknowledgement audit trail
type Store interface {
	// SaveAcknowledgement appends one acknowledgement submission
	SaveAcknowledgement(ack *types.Acknowledgement, receivedAt time.Time) error

	// ListAcknowledgements returns every recorded submission for the order,
	// oldest first
	ListAcknowledgements(orderID string) ([]*AcknowledgementRecord, error)

	// Close releases the underlying storage
	Close() error
}
