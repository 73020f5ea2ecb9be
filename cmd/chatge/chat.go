package chatge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/james-coso/chatge.ie/pkg/chat"
	"github.com/james-coso/chatge.ie/pkg/config"
	"github.com/james-coso/chatge.ie/pkg/ui"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	var (
		server     string
		showErrors bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			transport := chat.NewHTTPTransport(serverURL(cmd, server), clientTimeout)
			catalog, err := transport.Prompts(cmd.Context())
			if err != nil {
				opts.logger.Warn().Err(err).Msg("Using built-in prompts")
				catalog = config.DefaultPrompts()
			}

			session := chat.NewSession(transport, opts.logger)
			session.ShowErrors = showErrors

			r := &repl{
				session: session,
				prompts: catalog.All(),
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
				errOut:  cmd.ErrOrStderr(),
				ask: func(ctx context.Context, text string) (string, error) {
					var reply string
					err := ui.RunWithSpinner(cmd.ErrOrStderr(), "Thinking…", func() error {
						turn, err := session.Submit(ctx, text)
						reply = turn.Content
						return err
					})
					return reply, err
				},
				render: ui.RenderReply,
			}
			return r.run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&server, "server", defaultServerURL, "Chat server URL")
	cmd.Flags().BoolVar(&showErrors, "show-errors", false, "Keep a visible error turn in the history when a request fails")
	return cmd
}

// repl reads one line per turn. Lines starting with "/" are commands.
type repl struct {
	session *chat.Session
	prompts []string
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	ask     func(ctx context.Context, text string) (string, error)
	render  func(html string) string
}

var errQuit = errors.New("quit")

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintln(r.out, ui.Logo())
	fmt.Fprintln(r.out, ui.Hint("Type a question, /prompts for suggestions, /reset to start over, /exit to quit."))

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprintf(r.out, "\n%s ", ui.UserLabel())
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := r.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprint(r.errOut, ui.RenderErrorBox("Request failed", err.Error()))
		}
	}
}

func (r *repl) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		return r.submit(ctx, line)
	}

	switch cmd := strings.TrimPrefix(line, "/"); cmd {
	case "exit", "quit":
		return errQuit
	case "reset":
		if err := r.session.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(r.out, ui.Hint("Started a new conversation."))
		return nil
	case "prompts":
		fmt.Fprint(r.out, ui.RenderPromptList(r.prompts))
		return nil
	case "pick":
		idx, err := ui.ReadSelection(r.prompts, "Choose a question")
		if err != nil {
			return err
		}
		return r.submit(ctx, r.prompts[idx])
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			return errors.Errorf("unknown command %q", line)
		}
		if n < 1 || n > len(r.prompts) {
			return errors.Errorf("no prompt %d (have %d)", n, len(r.prompts))
		}
		prompt := r.prompts[n-1]
		fmt.Fprintln(r.out, prompt)
		return r.submit(ctx, prompt)
	}
}

func (r *repl) submit(ctx context.Context, text string) error {
	reply, err := r.ask(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\n%s\n%s", ui.AssistantLabel(), r.render(reply))
	return nil
}
