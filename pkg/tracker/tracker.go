// Package tracker drives the external image-tracking engine the note is
// overlaid on. It shares nothing with note state except the status line.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

const (
	// MsgLoading is shown while the engine starts.
	MsgLoading = "Starting camera…"
	// MsgStartFailed replaces the loading line when Start fails.
	MsgStartFailed = "Camera initialization failed. Restart stickynote to try again."
	// MsgEngineError replaces the loading line when the engine reports an error.
	MsgEngineError = "Tracking could not start. Check the camera connection and permissions."
)

// Engine is an image-tracking engine.
type Engine interface {
	// Start brings the engine up; a nil error means tracking is ready.
	Start(ctx context.Context) error
	// Errors delivers errors raised after a successful start. It may be nil.
	Errors() <-chan error
}

// Phase of the engine lifecycle.
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is what the loading line shows.
type Status struct {
	Phase   Phase
	Message string
	Err     error
}

// Visible reports whether the loading line should be shown at all.
func (s Status) Visible() bool {
	return s.Phase != Ready
}

// Starting is the initial status.
func Starting() Status {
	return Status{Phase: Loading, Message: MsgLoading}
}

// StartStatus starts eng and returns the resulting status.
func StartStatus(ctx context.Context, eng Engine) Status {
	if eng == nil {
		return Status{Phase: Ready}
	}
	if err := eng.Start(ctx); err != nil {
		return Status{Phase: Failed, Message: MsgStartFailed, Err: err}
	}
	return Status{Phase: Ready}
}

// WaitError blocks until eng reports an error or ctx ends. ok is false when
// no further error can arrive.
func WaitError(ctx context.Context, eng Engine) (Status, bool) {
	if eng == nil {
		return Status{}, false
	}
	select {
	case <-ctx.Done():
		return Status{}, false
	case err, ok := <-eng.Errors():
		if !ok {
			return Status{}, false
		}
		return Status{Phase: Failed, Message: MsgEngineError, Err: err}, true
	}
}

// Nop is used when no tracking command is configured.
type Nop struct{}

func (Nop) Start(context.Context) error { return nil }
func (Nop) Errors() <-chan error        { return nil }

// Active reports whether eng does any tracking. nil and Nop do not.
func Active(eng Engine) bool {
	if eng == nil {
		return false
	}
	_, nop := eng.(Nop)
	return !nop
}

// Exec runs an external tracking process. A clean start is ready; a non-zero
// exit while ctx is live is reported on Errors.
type Exec struct {
	Argv   []string
	Stderr io.Writer

	once sync.Once
	errs chan error
}

// NewExec returns an engine for argv, or Nop when argv is empty.
func NewExec(argv []string) Engine {
	if len(argv) == 0 {
		return Nop{}
	}
	return &Exec{Argv: argv, errs: make(chan error, 1)}
}

var errStarted = errors.New("tracker: already started")

func (e *Exec) Start(ctx context.Context) error {
	if len(e.Argv) == 0 {
		return errors.New("tracker: no command")
	}
	err := errStarted
	e.once.Do(func() {
		if e.errs == nil {
			e.errs = make(chan error, 1)
		}
		cmd := exec.CommandContext(ctx, e.Argv[0], e.Argv[1:]...)
		cmd.Stderr = e.Stderr
		if err = cmd.Start(); err != nil {
			err = fmt.Errorf("tracker: start %s: %w", e.Argv[0], err)
			close(e.errs)
			return
		}
		go func() {
			defer close(e.errs)
			if werr := cmd.Wait(); werr != nil && ctx.Err() == nil {
				e.errs <- fmt.Errorf("tracker: %s exited: %w", e.Argv[0], werr)
			}
		}()
	})
	return err
}

func (e *Exec) Errors() <-chan error {
	return e.errs
}
