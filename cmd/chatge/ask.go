package chatge

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/james-coso/chatge.ie/pkg/chat"
	"github.com/james-coso/chatge.ie/pkg/config"
	"github.com/james-coso/chatge.ie/pkg/ui"
)

// clientTimeout bounds a single request from the CLI. It covers the default
// polling budget with room to spare.
const clientTimeout = config.DefaultPollInterval*config.DefaultMaxAttempts + 30*time.Second

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		server string
		raw    bool
	)
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question through a running chat server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("no question provided")
			}

			session := chat.NewSession(chat.NewHTTPTransport(serverURL(cmd, server), clientTimeout), opts.logger)
			var reply string
			err := ui.RunWithSpinner(cmd.ErrOrStderr(), "Thinking…", func() error {
				turn, err := session.Submit(cmd.Context(), question)
				reply = turn.Content
				return err
			})
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.RenderErrorBox("Request failed", err.Error()))
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(out, reply)
			} else {
				fmt.Fprint(out, ui.RenderReply(reply))
			}
			fmt.Fprintln(out, ui.Hint("thread: "+session.ThreadID()))
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", defaultServerURL, "Chat server URL")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the HTML reply as returned by the server")
	return cmd
}
