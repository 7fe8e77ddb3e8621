package services

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lborres/easel/core"
)

const defaultStrokeQueueSize = 1024

// StrokeLog is the append-only stroke recorder. Append never blocks the
// caller: samples go onto a bounded queue drained by a single worker
// goroutine, and when the queue is full the sample is dropped. Storage
// failures are logged and swallowed - a transient network failure must
// never interrupt drawing, so the only observable signals are the logger
// and the Dropped counter.
type StrokeLog struct {
	storage core.StrokeStorage
	queue   chan *core.Stroke
	log     *slog.Logger

	dropped atomic.Int64
	done    chan struct{}
	once    sync.Once
}

func NewStrokeLog(storage core.StrokeStorage, queueSize int, log *slog.Logger) *StrokeLog {
	if queueSize <= 0 {
		queueSize = defaultStrokeQueueSize
	}
	l := &StrokeLog{
		storage: storage,
		queue:   make(chan *core.Stroke, queueSize),
		log:     log,
		done:    make(chan struct{}),
	}
	go l.drain()
	return l
}

// Append enqueues one stroke sample. Non-blocking: if the queue is full
// the sample is dropped and counted.
func (l *StrokeLog) Append(drawingID, userID string, x, y int, color string, brushSize int) {
	s := &core.Stroke{
		DrawingID: drawingID,
		UserID:    userID,
		X:         x,
		Y:         y,
		Color:     color,
		BrushSize: brushSize,
	}

	select {
	case l.queue <- s:
	default:
		l.dropped.Add(1)
		l.log.Debug("stroke queue full, sample dropped", "drawing", drawingID)
	}
}

// Dropped returns the number of samples discarded because the queue was
// full. Diagnostics only.
func (l *StrokeLog) Dropped() int64 {
	return l.dropped.Load()
}

// Close stops accepting samples and waits for the queue to drain.
func (l *StrokeLog) Close() {
	l.once.Do(func() {
		close(l.queue)
		<-l.done
	})
}

func (l *StrokeLog) drain() {
	defer close(l.done)
	for s := range l.queue {
		if err := l.storage.AppendStroke(s); err != nil {
			// Swallowed on purpose: stroke persistence is best-effort
			l.log.Debug("stroke append failed", "drawing", s.DrawingID, "error", err)
		}
	}
}
