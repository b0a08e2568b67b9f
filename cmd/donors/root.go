package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/smottahedi/find-political-donors/internal/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/config"
	"github.com/smottahedi/find-political-donors/internal/core/storage/sqlstore"
	"github.com/smottahedi/find-political-donors/internal/ingestion"
	"github.com/smottahedi/find-political-donors/internal/report"
)

// CreateCmd creates the root command.
func CreateCmd() *cobra.Command {
	var r runner

	c := &cobra.Command{
		Use:   "donors INPUT ZIP_OUT DATE_OUT",
		Short: "compute running contribution statistics",
		Long: `Read FEC individual contribution records and write per recipient
statistics by zip code (one line per accepted record, in input order) and by
transaction date (one line per recipient and date, sorted).`,
		Args:          cobra.ExactArgs(3),
		RunE:          r.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	r.setupFlags(c)
	c.AddCommand(createServeCmd())
	return c
}

type runner struct {
	configPath string
	delimiter  DelimiterFlag
	cacheSize  int
	storeDSN   string
	progress   bool
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.PersistentFlags().StringVar(&r.configPath, "config", "", "YAML configuration file")
	c.PersistentFlags().StringVar(&r.storeDSN, "store-dsn", "", "store database (sqlite path or postgres DSN)")
	c.Flags().Var(&r.delimiter, "delimiter", "input field delimiter")
	c.Flags().IntVar(&r.cacheSize, "cache-size", 0, "transactions between store flushes")
	c.Flags().BoolVar(&r.progress, "progress", false, "show a progress bar on stderr")
}

// overrides returns the flags set on the command line as config keys.
func (r *runner) overrides(cmd *cobra.Command) map[string]interface{} {
	o := make(map[string]interface{})
	if cmd.Flags().Changed("delimiter") {
		o["input.delimiter"] = r.delimiter.String()
	}
	if cmd.Flags().Changed("cache-size") {
		o["store.cache_size"] = r.cacheSize
	}
	if cmd.Flags().Changed("store-dsn") {
		o["store.dsn"] = r.storeDSN
	}
	return o
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(r.configPath, r.overrides(cmd))
	if err != nil {
		return err
	}
	setupLogger(cmd.ErrOrStderr(), cfg.Log)

	if err := r.execute(cmd.Context(), cmd.ErrOrStderr(), cfg, args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "elapsed time: %s\n", time.Since(start))
	return nil
}

func (r *runner) execute(ctx context.Context, stderr io.Writer, cfg *config.Config, inputPath, zipPath, datePath string) (err error) {
	slog.Debug("[Donors] Loaded config",
		"layout", cfg.Layout.Name,
		"layout_fingerprint", cfg.Layout.Fingerprint,
		"delimiter", cfg.Input.Delimiter,
		"store_driver", cfg.Store.Driver,
		"cache_size", cfg.Store.CacheSize,
	)

	// Refuse before touching the store or the input.
	if err := report.CheckAbsent(zipPath, datePath); err != nil {
		return err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	var input io.Reader = f
	if r.progress {
		bar, reader, barErr := progressReader(f, stderr)
		if barErr != nil {
			return barErr
		}
		defer bar.Finish()
		input = reader
	}

	repo, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Store.Driver,
		DSN:          cfg.Store.DSN,
		MaxOpenConns: cfg.Store.MaxOpenConns,
		AutoMigrate:  cfg.Store.AutoMigrate,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	if cfg.Store.Reset {
		if err := repo.Reset(ctx); err != nil {
			return multierr.Append(fmt.Errorf("resetting store: %w", err), repo.Close())
		}
	}

	store := aggregation.NewStore(repo, aggregation.StoreOptions{CacheSize: cfg.Store.CacheSize})
	defer func() {
		if err != nil {
			// Keep the store at the last flush, in step with the zip report.
			err = multierr.Append(err, repo.Close())
			return
		}
		err = store.Close(context.WithoutCancel(ctx))
	}()

	scanner := ingestion.NewScanner(ingestion.NewParser(cfg.Layout, cfg.Input.Delimiter), cfg.Input.MaxLineBytes)
	_, err = aggregation.Run(ctx, input, zipPath, datePath, scanner, store)
	return err
}

func progressReader(f *os.File, w io.Writer) (*pb.ProgressBar, io.Reader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("reading input size: %w", err)
	}
	bar := pb.Full.New(0).
		SetTotal(info.Size()).
		SetWriter(w).
		Set(pb.Bytes, true).
		Start()
	return bar, bar.NewProxyReader(f), nil
}
