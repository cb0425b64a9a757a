/*
Package storage persists the acknowledgement audit trail.

Every acknowledgement an entity submits is appended as its own record, so
duplicate submissions for one order stay visible instead of being
collapsed. The event log deliberately lives in process memory only (see
pkg/events); this package covers acknowledgements, which are an audit
record and should survive restarts.

Two implementations of the Store interface exist:

  - BoltStore: BoltDB file under the service data directory, keys laid out
    as "<orderID>\x00<sequence>" so one order's submissions are adjacent
    and insertion-ordered
  - MemoryStore: map-backed, used by tests

# Usage

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.SaveAcknowledgement(ack, time.Now())
	records, err := store.ListAcknowledgements("51/I/03.02.2026")
*/
package storage
