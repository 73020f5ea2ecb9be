package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/james-coso/chatge.ie/pkg/api"
)

const (
	shutdownGrace     = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	// writeSlack is added to the polling budget so a timed-out run can still
	// be reported to the client.
	writeSlack = 30 * time.Second
)

// ServerConfig contains configuration for the chat web server
type ServerConfig struct {
	Port           int
	Handlers       *api.Handlers
	Page           PageData
	RequestTimeout time.Duration // longest a single ask may poll
	Logger         zerolog.Logger
}

// NewRouter builds the router serving the API, the chat widget and its static assets.
func NewRouter(cfg ServerConfig) (*mux.Router, error) {
	page, err := newPageHandler(cfg.Page)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(api.Middleware(cfg.Logger)...)

	api.RegisterRoutes(router, cfg.Handlers)
	router.PathPrefix("/static/").Handler(staticHandler())
	router.Handle("/", page).Methods("GET")

	return router, nil
}

// Run starts the chat web server and blocks until ctx is cancelled or the
// server fails. Cancellation triggers a graceful shutdown.
func Run(ctx context.Context, cfg ServerConfig) error {
	logger := cfg.Logger.With().Str("component", "web").Logger()
	cfg.Logger = logger

	router, err := NewRouter(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.RequestTimeout + writeSlack,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Int("port", cfg.Port).Msgf("Starting chat UI on http://localhost:%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Info().Msg("Shutting down chat UI")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
