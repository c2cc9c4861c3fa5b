package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewpaige1/thoughtcatcher-api/auth"
	"github.com/andrewpaige1/thoughtcatcher-api/handlers"
	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/middleware"
	"github.com/andrewpaige1/thoughtcatcher-api/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(port)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	tokens, err := auth.NewTokens(auth.TokenConfig{
		Secret:   a.cfg.JWTSecret,
		Issuer:   a.cfg.JWTIssuer,
		Audience: a.cfg.JWTAudience,
		TTL:      a.cfg.TokenTTL,
	})
	if err != nil {
		return err
	}
	tokenValidator, err := tokens.Validator()
	if err != nil {
		return err
	}

	guard := services.NewGuard(a.db)
	h := &handlers.APIHandler{
		Users:       services.NewUsers(a.db, tokens, a.cfg.ResetTokenTTL),
		MindMaps:    services.NewMindMaps(a.db, guard),
		Nodes:       services.NewNodes(a.db, guard),
		Connections: services.NewConnections(a.db, guard),
		Logs:        logging.NewViewer(a.cfg.LogDir),
		Development: a.cfg.IsDevelopment(),
		Started:     time.Now(),
	}
	router := handlers.NewRouter(h, handlers.RouterOptions{
		TokenAuth:      middleware.EnsureValidToken(tokenValidator),
		AllowedOrigins: a.cfg.ClientURLs,
		Logger:         a.logger,
	})

	server := &http.Server{
		Addr:              "0.0.0.0:" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", zap.String("addr", server.Addr), zap.String("env", a.cfg.Env))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
