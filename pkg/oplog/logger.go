package oplog

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrFinalized is wrapped by the panic raised when a finalized logger is
// written to or suspended. Logging after finalize is a lifecycle bug in
// operation composition, so it fails loudly instead of dropping the entry.
var ErrFinalized = errors.New("logger already finalized")

// Level is the severity of a buffered entry.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case level name as used in artifact filenames.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ZerologLevel maps a Level onto the mirror sink's level scale.
func (l Level) ZerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

// Entry is a single buffered log record.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  map[string]interface{}
	Err     error
}

// Suspension is the ownership token returned by Suspend. It names the
// suspended logical record and the part number that was just closed, and is
// redeemed through Registry.Resume to continue the record.
type Suspension struct {
	Name string
	Part int
}

// Logger buffers structured entries for one logical operation.
//
// A Logger is not safe for concurrent use. Operations execute strictly one
// at a time and the logger is a single-writer resource: only the current
// owning operation, or the registry's emergency flush, may write or
// finalize it.
type Logger struct {
	reg       *Registry
	name      string
	part      int
	prevPart  int // 0 unless this logger continues a suspended record
	multipart bool
	entries   []Entry
	finalized bool
	artifact  string
}

// Name returns the operation name this logger records for.
func (l *Logger) Name() string { return l.name }

// Part returns the 1-based part number of this logger.
func (l *Logger) Part() int { return l.part }

// Len returns the number of buffered entries.
func (l *Logger) Len() int { return len(l.entries) }

// Finalized reports whether the logger has been closed.
func (l *Logger) Finalized() bool { return l.finalized }

// Log appends a timestamped entry to the buffer and mirrors it immediately
// to the live console sink. It panics with an error wrapping ErrFinalized
// if the logger has already been finalized.
func (l *Logger) Log(level Level, msg string, fields map[string]interface{}, err error) {
	if l.finalized {
		panic(fmt.Errorf("oplog: log %q to logger %q part %d: %w", msg, l.name, l.part, ErrFinalized))
	}

	entry := Entry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  fields,
		Err:     err,
	}
	l.entries = append(l.entries, entry)
	l.mirror(entry)
}

// Debugf buffers a formatted debug entry.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}

// Infof buffers a formatted info entry.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf buffers a formatted warning entry.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Log(LevelWarn, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf buffers a formatted error entry.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Log(LevelError, fmt.Sprintf(format, args...), nil, nil)
}

// mirror forwards an entry to the registry's live sink.
func (l *Logger) mirror(entry Entry) {
	ev := l.reg.mirror.WithLevel(entry.Level.ZerologLevel()).Str("op_log", l.name)
	if l.part > 1 {
		ev = ev.Int("part", l.part)
	}
	for k, v := range entry.Fields {
		ev = ev.Interface(k, v)
	}
	if entry.Err != nil {
		ev = ev.Err(entry.Err)
	}
	ev.Msg(entry.Message)
}

// Finalize closes the logger and writes the buffered entries as one named
// artifact. It is idempotent: repeated calls return the original artifact
// path. An empty buffer produces no artifact and returns an empty path.
func (l *Logger) Finalize() (string, error) {
	if l.finalized {
		return l.artifact, nil
	}
	l.finalized = true
	l.reg.forget(l)

	if len(l.entries) == 0 {
		return "", nil
	}

	path, err := l.reg.writeArtifact(l)
	if err != nil {
		return "", fmt.Errorf("finalizing logger %q: %w", l.name, err)
	}
	l.artifact = path
	return path, nil
}

// Suspend finalizes the current buffer as a numbered part and returns the
// token a successor logger continues from. Only an owning operation may
// suspend its logger; suspending a finalized logger panics.
func (l *Logger) Suspend() (*Suspension, error) {
	if l.finalized {
		panic(fmt.Errorf("oplog: suspend logger %q part %d: %w", l.name, l.part, ErrFinalized))
	}

	l.multipart = true
	if _, err := l.Finalize(); err != nil {
		return nil, err
	}
	return &Suspension{Name: l.name, Part: l.part}, nil
}
