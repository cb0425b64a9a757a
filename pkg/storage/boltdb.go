package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

var bucketAcknowledgements = []byte("acknowledgements")

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "redispatch.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAcknowledgements); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketAcknowledgements, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SaveAcknowledgement appends one acknowledgement submission
func (s *BoltStore) SaveAcknowledgement(ack *types.Acknowledgement, receivedAt time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAcknowledgements)

		record := AcknowledgementRecord{
			Acknowledgement: *ack,
			ReceivedAt:      receivedAt,
		}
		data, err := json.Marshal(&record)
		if err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(ackKey(ack.RedispatchOrderID, seq), data)
	})
}

// ListAcknowledgements returns every recorded submission for the order,
// oldest first
func (s *BoltStore) ListAcknowledgements(orderID string) ([]*AcknowledgementRecord, error) {
	var records []*AcknowledgementRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketAcknowledgements).Cursor()
		prefix := append([]byte(orderID), 0x00)

		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var record AcknowledgementRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, &record)
		}
		return nil
	})
	return records, err
}

// Keys are "<orderID>\x00<sequence>" so submissions for one order are
// adjacent and ordered by insertion. Order ids never contain NUL.
func ackKey(orderID string, seq uint64) []byte {
	key := make([]byte, 0, len(orderID)+9)
	key = append(key, orderID...)
	key = append(key, 0x00)
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}
