package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/postgres"
	"github.com/meikuraledutech/flow/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the canvas HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

var addrFlag string

func serve(ctx context.Context) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	g := flow.NewGraph(
		flow.WithLogger(logger.Named("graph")),
		flow.WithDuplicateOffset(flow.Position{X: cfg.Canvas.DuplicateOffsetX, Y: cfg.Canvas.DuplicateOffsetY}),
	)
	ctrl := flow.NewController(g,
		flow.WithCenteringOffset(flow.Position{X: cfg.Canvas.CenterOffsetX, Y: cfg.Canvas.CenterOffsetY}),
		flow.WithControllerLogger(logger.Named("controller")),
	)

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithCanvasColor(cfg.Canvas.Color),
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()
		opts = append(opts, server.WithPersister(postgres.New(pool, logger)))
	} else {
		logger.Info("postgres.url not set; persistence routes disabled")
	}

	app := server.New(ctrl, catalog, opts...).App()

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	logger.Info("listening", zap.String("addr", addr), zap.Int("templates", catalog.Len()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
