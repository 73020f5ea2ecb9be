package chatge

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/james-coso/chatge.ie/pkg/config"
	"github.com/james-coso/chatge.ie/pkg/provider/openai"
)

func newAssistantsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assistants",
		Short: "List the assistants available to the configured API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			provider := cfg.OpenAI()
			if provider["api_key"] == "" {
				return errors.Errorf("openai api key is not configured (set %s or run 'chatge setup')", config.ProviderEnvMapping["openai"]["api_key"])
			}

			client := openai.NewClient(openai.ClientConfig{
				APIKey:       provider["api_key"],
				BaseURL:      provider["base_url"],
				Organization: provider["organization"],
			})
			assistants, err := openai.ListAssistants(cmd.Context(), client)
			if err != nil {
				return err
			}
			opts.logger.Debug().Int("count", len(assistants)).Msg("Listed assistants")

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODEL\t")
			for _, a := range assistants {
				marker := ""
				if a.ID == cfg.Assistant.ID {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Model, marker)
			}
			return w.Flush()
		},
	}
}
