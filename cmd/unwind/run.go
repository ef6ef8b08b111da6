package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/session"
	"github.com/danielpatrickdp/unwind/go-controller/internal/timedwait"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
)

// #region interactive

const (
	speakerPrefix = "UNWIND: "
	userPrompt    = "YOU: "
)

func runInteractive(cmd *cobra.Command, o *options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	tty := isTerminal(in)

	durations, err := o.cfg.Durations()
	if err != nil {
		return err
	}
	store, err := patternmem.NewStore(&o.cfg.Patterns)
	if err != nil {
		return fmt.Errorf("open pattern memory: %w", err)
	}
	defer closeIfCloser(store, o.logger)

	console := timedwait.NewConsole(in, nil)
	defer console.Close()

	c := session.New(ctx,
		session.WithStore(store),
		session.WithWaiter(console),
		session.WithLogger(o.logger),
		session.WithDurations(durations),
	)
	o.logger.Debug("session started",
		zap.String("session_id", c.SessionID()),
		zap.String("pattern_backend", o.cfg.Patterns.Backend))

	if tty {
		fmt.Fprintln(out, "UNWIND. Type quit at any time to leave. Press Enter during a silence to move on.")
		fmt.Fprintln(out)
	}

	prompt := userPrompt
	if !tty {
		prompt = ""
	}
	if err := drive(ctx, c, console, out, prompt); err != nil {
		return err
	}

	return export(context.WithoutCancel(ctx), c, o, out)
}

// drive alternates between pending silences and prompted input until the
// session exits or input runs out.
func drive(ctx context.Context, c *session.Controller, console *timedwait.Console, out io.Writer, prompt string) error {
	show(out, c.Start(ctx))
	for !c.Finished() {
		if msg, ok := c.ResumeIfWaiting(ctx); ok {
			show(out, msg)
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		line, err := console.ReadLine(ctx, prompt)
		if err != nil {
			if errors.Is(err, timedwait.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		show(out, c.Step(ctx, line))
	}
	return nil
}

func show(out io.Writer, msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(out, "\n%s%s\n\n", speakerPrefix, msg)
}

func export(ctx context.Context, c *session.Controller, o *options, out io.Writer) error {
	w, err := transcript.NewWriter(&o.cfg.Transcripts)
	if err != nil {
		return fmt.Errorf("open transcript writer: %w", err)
	}
	defer closeIfCloser(w, o.logger)

	loc, err := c.Export(ctx, w)
	if err != nil {
		return fmt.Errorf("export transcript: %w", err)
	}
	if loc != "" {
		fmt.Fprintf(out, "Transcript saved: %s\n", loc)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// #endregion interactive
