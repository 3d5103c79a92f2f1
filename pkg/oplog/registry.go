package oplog

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// Registry tracks every live logger in the process and owns the settings
// shared by all of them: the artifact directory, the file extension, the
// live mirror sink, and the sequence counter that disambiguates artifacts
// created within the same millisecond.
type Registry struct {
	mu     sync.Mutex
	dir    string
	ext    string
	mirror zerolog.Logger
	seq    int64
	live   map[*Logger]struct{}
}

// Option configures a Registry.
type Option func(*Registry)

// WithMirror sets the live console sink entries are mirrored to.
func WithMirror(mirror zerolog.Logger) Option {
	return func(r *Registry) {
		r.mirror = mirror
	}
}

// WithExtension sets the artifact file extension (without the dot).
func WithExtension(ext string) Option {
	return func(r *Registry) {
		if ext != "" {
			r.ext = ext
		}
	}
}

// NewRegistry creates a registry writing artifacts under dir.
// The default mirror is a disabled logger; pass WithMirror for live output.
func NewRegistry(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:    dir,
		ext:    "log",
		mirror: zerolog.Nop(),
		live:   make(map[*Logger]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the artifact directory.
func (r *Registry) Dir() string { return r.dir }

// Mirror returns the live console sink shared by all loggers.
func (r *Registry) Mirror() zerolog.Logger { return r.mirror }

// NewLogger creates a live part-1 logger for the named operation.
func (r *Registry) NewLogger(name string) *Logger {
	l := &Logger{
		reg:  r,
		name: name,
		part: 1,
	}
	r.remember(l)
	return l
}

// Resume creates the successor of a suspended logger. The new logger
// continues the same logical record as part susp.Part+1 and its artifact is
// marked as a continuation of the prior part.
func (r *Registry) Resume(susp *Suspension) *Logger {
	l := &Logger{
		reg:       r,
		name:      susp.Name,
		part:      susp.Part + 1,
		prevPart:  susp.Part,
		multipart: true,
	}
	r.remember(l)
	return l
}

// LiveCount returns the number of open loggers.
func (r *Registry) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// FinalizeAll force-finalizes every live logger. Finalize is idempotent, so
// loggers closed concurrently by their owners are skipped harmlessly. Used
// on abnormal termination to guarantee buffered entries are never lost.
func (r *Registry) FinalizeAll() error {
	r.mu.Lock()
	open := make([]*Logger, 0, len(r.live))
	for l := range r.live {
		open = append(open, l)
	}
	r.mu.Unlock()

	var errs []error
	for _, l := range open {
		if _, err := l.Finalize(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InstallEmergencyFlush hooks SIGINT and SIGTERM so that an interrupted
// process flushes all open loggers before exiting with status 1. A non-nil
// beforeExit hook runs first, while loggers are still live, so callers can
// record the interruption elsewhere. The returned stop function removes the
// hook; call it once the run completes normally.
func (r *Registry) InstallEmergencyFlush(beforeExit func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			r.emergencyFlush(beforeExit)
			os.Exit(1)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}

// emergencyFlush runs the pre-exit hook and then force-finalizes every
// live logger.
func (r *Registry) emergencyFlush(beforeExit func()) {
	if beforeExit != nil {
		beforeExit()
	}
	if err := r.FinalizeAll(); err != nil {
		r.mirror.Error().Err(err).Msg("emergency log flush failed")
	}
}

func (r *Registry) remember(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[l] = struct{}{}
}

func (r *Registry) forget(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, l)
}

// nextSeq returns the next artifact sequence number.
func (r *Registry) nextSeq() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq
}
