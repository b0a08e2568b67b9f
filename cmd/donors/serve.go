package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/smottahedi/find-political-donors/internal/core/config"
	"github.com/smottahedi/find-political-donors/internal/core/storage/sqlstore"
	"github.com/smottahedi/find-political-donors/internal/projection"
	"github.com/smottahedi/find-political-donors/internal/server"
)

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve persisted aggregates over HTTP",
		Long:  `Serve the aggregates of a persistent store (store.dsn) through a read-only HTTP API.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	overrides := make(map[string]interface{})
	if f := cmd.Flags().Lookup("store-dsn"); f != nil && f.Changed {
		overrides["store.dsn"] = f.Value.String()
	}
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return err
	}
	setupLogger(cmd.ErrOrStderr(), cfg.Log)

	if strings.TrimSpace(cfg.Store.DSN) == "" {
		return fmt.Errorf("serve requires a persistent store: set store.dsn or --store-dsn")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	repo, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Store.Driver,
		DSN:          cfg.Store.DSN,
		MaxOpenConns: cfg.Store.MaxOpenConns,
		AutoMigrate:  cfg.Store.AutoMigrate,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		err = multierr.Append(err, repo.Close())
	}()

	srv := server.New(net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)), repo, cfg.Server.Mode)
	projection.NewService(repo).RegisterRoutes(srv.Engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case sig := <-quit:
			slog.Info("[Serve] Signal received, shutting down", "signal", sig.String())
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	return g.Wait()
}
