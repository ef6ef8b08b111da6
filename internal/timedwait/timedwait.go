// Package timedwait models the single blocking point of a session: wait up to
// a deadline for a line of user text, or report that the silence completed.
package timedwait

// #region imports
import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// #endregion imports

// #region interface

// Provider waits up to timeout. It returns the interrupting text with
// interrupted=true, or interrupted=false when the deadline passed first.
type Provider interface {
	Wait(ctx context.Context, prompt string, timeout time.Duration) (text string, interrupted bool, err error)
}

// Func adapts a plain function to Provider.
type Func func(ctx context.Context, prompt string, timeout time.Duration) (string, bool, error)

func (f Func) Wait(ctx context.Context, prompt string, timeout time.Duration) (string, bool, error) {
	return f(ctx, prompt, timeout)
}

// ErrClosed is returned once the console input has reached EOF or was closed.
var ErrClosed = errors.New("timedwait: input closed")

// #endregion interface

// #region instant

// Instant always reports the silence as completed without blocking.
type Instant struct{}

func (Instant) Wait(ctx context.Context, _ string, _ time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// #endregion instant

// #region scripted

// Outcome is one scripted wait result. A nil Text means the silence completes.
type Outcome struct {
	Text *string
}

// Interrupt returns an Outcome that interrupts with text.
func Interrupt(text string) Outcome {
	return Outcome{Text: &text}
}

// Timeout returns an Outcome that lets the silence complete.
func Timeout() Outcome {
	return Outcome{}
}

// Scripted replays outcomes in order, then times out once exhausted. It also
// records every timeout it was asked to wait for.
type Scripted struct {
	mu       sync.Mutex
	outcomes []Outcome
	waited   []time.Duration
}

// NewScripted creates a Scripted provider from outcomes.
func NewScripted(outcomes ...Outcome) *Scripted {
	return &Scripted{outcomes: outcomes}
}

func (s *Scripted) Wait(ctx context.Context, _ string, timeout time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waited = append(s.waited, timeout)
	if len(s.outcomes) == 0 {
		return "", false, nil
	}
	next := s.outcomes[0]
	s.outcomes = s.outcomes[1:]
	if next.Text == nil {
		return "", false, nil
	}
	return *next.Text, true, nil
}

// Waited returns the timeouts requested so far, in call order.
func (s *Scripted) Waited() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.waited))
	copy(out, s.waited)
	return out
}

// Remaining returns how many scripted outcomes have not been consumed.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outcomes)
}

// #endregion scripted

// #region console

// Console reads newline-terminated input from an io.Reader. One reader
// goroutine feeds every wait and every prompted read, so a line typed after a
// silence completed is delivered to the next ReadLine instead of being lost.
type Console struct {
	out   io.Writer
	lines chan string
	done  chan struct{}
	once  sync.Once

	mu  sync.Mutex
	err error
}

// NewConsole starts reading lines from in. Prompts are written to out, which
// may be nil.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go c.readLoop(in)
	return c
}

func (c *Console) readLoop(in io.Reader) {
	defer close(c.lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case c.lines <- strings.TrimSpace(sc.Text()):
		case <-c.done:
			return
		}
	}
	c.mu.Lock()
	if err := sc.Err(); err != nil {
		c.err = fmt.Errorf("timedwait: read input: %w", err)
	}
	c.mu.Unlock()
}

// Close stops delivering lines. The reader goroutine exits once it is
// unblocked by the next line or by EOF on the underlying reader.
func (c *Console) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Console) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return ErrClosed
}

func (c *Console) prompt(p string) {
	if p != "" && c.out != nil {
		fmt.Fprint(c.out, p)
	}
}

// Wait blocks until a line arrives, the timeout elapses, or ctx is done. An
// empty line counts as the silence completing.
func (c *Console) Wait(ctx context.Context, prompt string, timeout time.Duration) (string, bool, error) {
	c.prompt(prompt)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", false, c.closedErr()
		}
		if line == "" {
			return "", false, nil
		}
		return line, true, nil
	case <-timer.C:
		return "", false, nil
	case <-c.done:
		return "", false, ErrClosed
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// ReadLine blocks for the next line with no deadline.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	c.prompt(prompt)
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", c.closedErr()
		}
		return line, nil
	case <-c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// #endregion console
