package event

import "github.com/rs/zerolog"

// Log writes events through a zerolog logger. CRC failures and malformed
// frames surface at warn level, everything else at info.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Record(ev Event) {
	level := zerolog.InfoLevel
	if ev.Kind == KindCRCFailure || ev.Kind == KindMalformed {
		level = zerolog.WarnLevel
	}
	entry := l.Logger.WithLevel(level).
		Str("source", ev.Source).
		Str("kind", string(ev.Kind))
	if ev.Seq >= 0 {
		entry = entry.Int("seq", ev.Seq)
	}
	entry.Msg(ev.Message)
}
