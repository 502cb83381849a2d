package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line with a live counter, e.g. "⠹ Converted 1200",
// while a conversion writes to a file. It stops on Stop or when its parent
// context ends.
type Spinner struct {
	label  string
	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}

	count       atomic.Int64
	started     atomic.Bool
	stopping    atomic.Bool
	interrupted atomic.Bool
	stopOnce    sync.Once

	mu    sync.Mutex // guards w and width
	width int
}

func newSpinner(ctx context.Context, label string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:  label,
		w:      statusOut,
		parent: ctx,
		ctx:    inner,
		cancel: cancel,
		exited: make(chan struct{}),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			if !s.stopping.Load() && s.parent.Err() != nil {
				s.interrupted.Store(true)
			}
			s.erase()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	text := s.label
	if n := s.count.Load(); n > 0 {
		text = fmt.Sprintf("%s %d", s.label, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(text))
	s.width = len(text) + 2
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Inc advances the counter by one.
func (s *Spinner) Inc() { s.count.Add(1) }

// Cancelled reports whether the parent context ended before Stop was called.
func (s *Spinner) Cancelled() bool { return s.interrupted.Load() }

// Stop ends the animation and clears the line. Later calls do nothing.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		s.cancel()
		if s.started.Load() {
			<-s.exited
		}
	})
}
