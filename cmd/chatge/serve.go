package chatge

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/james-coso/chatge.ie/pkg/api"
	"github.com/james-coso/chatge.ie/pkg/assistant"
	"github.com/james-coso/chatge.ie/pkg/config"
	"github.com/james-coso/chatge.ie/pkg/format"
	"github.com/james-coso/chatge.ie/pkg/launcher"
	"github.com/james-coso/chatge.ie/pkg/provider/openai"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port       int
		renderMode string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat widget and the /api/ask-gpt proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.General.Port = port
			}
			if cmd.Flags().Changed("render-mode") {
				cfg.General.RenderMode = renderMode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, opts.logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&renderMode, "render-mode", config.DefaultRenderMode, "Reply rendering: minimal|markdown")
	return cmd
}

// newProxy wires the upstream client, poller and renderer from cfg.
func newProxy(cfg *config.AppConfig, logger zerolog.Logger) *assistant.Proxy {
	provider := cfg.OpenAI()
	client := openai.NewClient(openai.ClientConfig{
		APIKey:       provider["api_key"],
		BaseURL:      provider["base_url"],
		Organization: provider["organization"],
	})

	return assistant.NewProxy(openai.NewAssistants(client), assistant.ProxyConfig{
		AssistantID:  cfg.Assistant.ID,
		Instructions: cfg.Assistant.Instructions,
		Fallback:     assistant.FallbackPolicy(cfg.Assistant.ThreadFallback),
		Poller:       assistant.NewPoller(cfg.Assistant.PollInterval, cfg.Assistant.MaxAttempts),
		Renderer:     format.ForMode(format.Mode(cfg.General.RenderMode)),
		Logger:       logger,
	})
}

func runServe(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) error {
	prompts := launcher.NewPromptStore(cfg.Prompts)
	handlers := api.NewHandlers(newProxy(cfg, logger), prompts.Get)

	logger.Info().
		Str("assistant_id", cfg.Assistant.ID).
		Str("render_mode", cfg.General.RenderMode).
		Str("thread_fallback", cfg.Assistant.ThreadFallback).
		Dur("request_timeout", cfg.RequestTimeout()).
		Msg("Starting chatge")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return launcher.Run(gctx, launcher.ServerConfig{
			Port:     cfg.General.Port,
			Handlers: handlers,
			Page: launcher.PageData{
				ShowErrorTurns: cfg.General.ShowErrorTurns,
			},
			RequestTimeout: cfg.RequestTimeout(),
			Logger:         logger,
		})
	})
	if path, err := config.GetConfigPath(); err == nil {
		g.Go(func() error {
			if err := prompts.Watch(gctx, path, logger); err != nil {
				// Serving continues with the prompts loaded at startup.
				logger.Warn().Err(err).Msg("Prompt catalog will not be reloaded")
			}
			return nil
		})
	}
	return g.Wait()
}
