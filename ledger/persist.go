/*
persist.go - Background snapshot writer

PURPOSE:
  Mutations update memory synchronously and hand the serialized worker set
  to a single writer goroutine. One writer means queued snapshots land in
  mutation order, so the last write always carries the newest state even
  when the UI fires rapid mutations.

FAILURE MODEL:
  Write failures are logged and dropped. In-memory state stays the source
  of truth for the session; the next mutation produces a fresh full
  snapshot, so a later successful write heals the gap. Durability is
  best-effort by design for this single-device tool.
*/
package ledger

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type writeRequest struct {
	key     string
	payload []byte

	// done, when set, marks a flush barrier instead of a write.
	done chan struct{}
}

type snapshotWriter struct {
	snapshots SnapshotStore
	log       *logrus.Logger

	mu       sync.Mutex
	closed   bool
	requests chan writeRequest
	stopped  chan struct{}
}

func newSnapshotWriter(snapshots SnapshotStore, log *logrus.Logger) *snapshotWriter {
	w := &snapshotWriter{
		snapshots: snapshots,
		log:       log,
		requests:  make(chan writeRequest, 32),
		stopped:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *snapshotWriter) run() {
	defer close(w.stopped)
	for req := range w.requests {
		if req.done != nil {
			close(req.done)
			continue
		}
		if err := w.snapshots.Save(context.Background(), req.key, req.payload); err != nil {
			w.log.WithError(err).WithField("key", req.key).
				Error("snapshot write failed; in-memory state remains authoritative")
		}
	}
}

// enqueue queues a full-snapshot write. Payloads are applied in order.
func (w *snapshotWriter) enqueue(key string, payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		// Late writes after shutdown are dropped like failed writes.
		w.log.WithField("key", key).Warn("snapshot write after close dropped")
		return
	}
	w.requests <- writeRequest{key: key, payload: payload}
}

// flush waits until every previously queued write has been attempted.
func (w *snapshotWriter) flush(ctx context.Context) error {
	barrier := make(chan struct{})

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.requests <- writeRequest{done: barrier}
	w.mu.Unlock()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the queue and stops the goroutine.
func (w *snapshotWriter) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.requests)
	w.mu.Unlock()
	<-w.stopped
}
