package chatge

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/james-coso/chatge.ie/pkg/config"
)

// setupValues are the answers collected by the setup form.
type setupValues struct {
	APIKey      string
	AssistantID string
	Port        string
	RenderMode  string
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure the OpenAI credentials and assistant interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			// Edit the file alone so environment overrides are not persisted.
			cfg, err := config.LoadAppConfigFile(path)
			if err != nil {
				return err
			}

			values := currentSetupValues(cfg)
			if err := setupForm(&values).Run(); err != nil {
				return err
			}
			if err := applySetupValues(cfg, values); err != nil {
				return err
			}

			if err := config.SaveAppConfig(cfg); err != nil {
				return errors.Wrap(err, "save config")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
}

func currentSetupValues(cfg *config.AppConfig) setupValues {
	v := setupValues{
		APIKey:      cfg.OpenAI()["api_key"],
		AssistantID: cfg.Assistant.ID,
		Port:        strconv.Itoa(config.DefaultPort),
		RenderMode:  config.DefaultRenderMode,
	}
	if cfg.General.Port > 0 {
		v.Port = strconv.Itoa(cfg.General.Port)
	}
	if cfg.General.RenderMode != "" {
		v.RenderMode = cfg.General.RenderMode
	}
	return v
}

func setupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey).
				Validate(required("API key")),
			huh.NewInput().
				Title("Assistant ID").
				Placeholder("asst_...").
				Value(&v.AssistantID).
				Validate(required("assistant ID")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Port").
				Value(&v.Port).
				Validate(validatePort),
			huh.NewSelect[string]().
				Title("Reply rendering").
				Options(
					huh.NewOption("Minimal (bold, italics, code, paragraphs)", "minimal"),
					huh.NewOption("Full markdown", "markdown"),
				).
				Value(&v.RenderMode),
		),
	)
}

func applySetupValues(cfg *config.AppConfig, v setupValues) error {
	port, err := strconv.Atoi(v.Port)
	if err != nil {
		return errors.Wrapf(err, "invalid port %q", v.Port)
	}
	cfg.OpenAI()["api_key"] = v.APIKey
	cfg.Assistant.ID = v.AssistantID
	cfg.General.Port = port
	cfg.General.RenderMode = v.RenderMode
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}
