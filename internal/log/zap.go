package log

import (
	"sync"

	"go.uber.org/zap"
)

// ZapLogger forwards game events to a structured zap logger. It keeps no
// history, so Events always returns nil.
type ZapLogger struct {
	mu  sync.Mutex
	seq int
	z   *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.mu.Lock()
	l.seq++
	event.Seq = l.seq
	l.mu.Unlock()

	fields := []zap.Field{
		zap.Int("seq", event.Seq),
		zap.String("player", event.Player),
		zap.String("type", event.Type.String()),
	}
	if event.Actor != "" && event.Actor != event.Player {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.Slot > 0 {
		fields = append(fields, zap.Int("slot", event.Slot))
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}

	if event.Type == EventDenied {
		l.z.Warn(event.Details, fields...)
		return
	}
	l.z.Info(event.Details, fields...)
}

func (l *ZapLogger) Events() []GameEvent {
	return nil
}
