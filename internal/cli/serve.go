package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jengzang/crime-analytics-go/internal/api"
	"github.com/jengzang/crime-analytics-go/internal/handler"
	"github.com/jengzang/crime-analytics-go/internal/repository"
	"github.com/jengzang/crime-analytics-go/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Execute implements the go-flags Commander interface for ServeCommand
func (c *ServeCommand) Execute(args []string) error {
	env, err := c.globals.load()
	if err != nil {
		return err
	}
	if c.Port != "" {
		env.cfg.Port = c.Port
	}
	if !strings.Contains(env.cfg.Port, ":") {
		env.cfg.Port = ":" + env.cfg.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := env.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewEventRepository(db, dialect)
	analyticsService := service.NewAnalyticsService(repo, env.catalog)
	router := api.SetupRouter(ctx, env.cfg, handler.NewAnalyticsHandler(analyticsService))

	log.Printf("crime-analytics %s serving datasets %s", c.version, strings.Join(env.catalog.Names(), ", "))
	if env.cfg.JWTSecret == "" {
		log.Printf("Bearer auth disabled (JWT_SECRET not set)")
	}

	srv := &http.Server{Addr: env.cfg.Port, Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", env.cfg.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
