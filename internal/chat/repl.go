package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"go-hfchat/internal/llm"
)

const maxLineSize = 1 << 20

// REPL runs an interactive chat session over line based input.
type REPL struct {
	session   *Session
	in        io.Reader
	out       io.Writer
	sessionID string
	logger    *zap.Logger

	cyan    *color.Color
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	magenta *color.Color
}

// NewREPL creates a REPL reading from in. Prompts and replies go to out, which
// should be the writer the session streams to.
func NewREPL(session *Session, in io.Reader, out io.Writer, sessionID string) *REPL {
	return &REPL{
		session:   session,
		in:        in,
		out:       out,
		sessionID: sessionID,
		logger:    session.options.logger(),

		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		magenta: color.New(color.FgMagenta, color.Bold),
	}
}

func (r *REPL) banner() {
	r.cyan.Fprintln(r.out, "╔════════════════════════╗")
	r.cyan.Fprintln(r.out, "║   Streaming Chat In Go ║")
	r.cyan.Fprintln(r.out, "╚════════════════════════╝")
	r.yellow.Fprintf(r.out, "Model: %s (session %s)\n", r.session.options.Model, r.sessionID)
}

func (r *REPL) help() {
	r.yellow.Fprintln(r.out, "Commands: 'clear' to reset the conversation, 'history' to view it, 'help' for this list, 'exit' to quit")
	fmt.Fprintln(r.out)
}

// readLines forwards input lines until EOF or ctx is done. The channel is
// closed when input ends; a read error is sent on errc.
func (r *REPL) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// Run starts the loop. It returns nil when the user exits, input ends or ctx
// is cancelled, and an error only if reading input fails.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.banner()
	r.help()
	r.logger.Info("Session started", zap.String("session", r.sessionID))

	lines, errc := r.readLines(ctx)
	for {
		r.green.Fprint(r.out, "You: ")

		var input string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				if err := <-errc; err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}
				return nil
			}
			input = strings.TrimSpace(line)
		}

		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			r.cyan.Fprintln(r.out, "Goodbye!")
			return nil
		case "clear":
			r.logger.Debug("Clearing conversation", zap.Int("turns", r.session.History().Len()))
			r.session.History().Reset()
			// Clear screen
			fmt.Fprint(r.out, "\033[H\033[2J")
			r.banner()
			r.yellow.Fprintln(r.out, "Conversation cleared.")
			fmt.Fprintln(r.out)
			continue
		case "history":
			r.printHistory()
			continue
		case "help":
			r.help()
			continue
		}

		r.magenta.Fprint(r.out, "Bot: ")
		if _, err := r.session.Send(ctx, input); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				fmt.Fprintln(r.out)
				return nil
			}
			r.red.Fprintf(r.out, "\nError: %v\n\n", err)
			continue
		}
		fmt.Fprint(r.out, "\n\n")
	}
}

func (r *REPL) printHistory() {
	turns := r.session.History().Turns()
	r.yellow.Fprintf(r.out, "Conversation History (%d messages):\n\n", len(turns))
	for _, turn := range turns {
		if turn.Role == llm.RoleUser {
			r.green.Fprintf(r.out, "You (%s): %s\n", turn.Timestamp.Format("15:04:05"), turn.Content)
		} else {
			r.magenta.Fprintf(r.out, "Bot (%s): %s\n", turn.Timestamp.Format("15:04:05"), turn.Content)
		}
	}
	fmt.Fprintln(r.out)
}
