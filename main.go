package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"terrawatch/export"
	"terrawatch/session"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "terrawatch",
		Short:        "TerraWatch AI - satellite land-cover change dashboard",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")

	root.AddCommand(serveCmd())
	root.AddCommand(zonesCmd())
	root.AddCommand(reportCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cfg, os.Stdout)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	app, err := newApp(logger.WithContext(initCtx), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer app.close(context.Background())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("renderer", string(app.renderer.Kind())).
			Str("generator", app.ctrl.Generator().Name()).
			Str("store", cfg.StoreDriver).
			Msg("TerraWatch listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
			return srv.Close()
		}
	}
	return nil
}

func zonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the selectable zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printZones(cmd.OutOrStdout(), session.DefaultZoneTable())
		},
	}
}

func printZones(w io.Writer, table *session.ZoneTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLAT\tLON\tZOOM")
	for _, z := range table.Zones() {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%d\n", z.Name, z.Lat, z.Lon, z.Zoom)
	}
	return tw.Flush()
}

type reportOptions struct {
	zone   string
	from   string
	to     string
	format string
	out    string
}

func reportCmd() *cobra.Command {
	var opts reportOptions
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a simulated analysis and write the report artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			ctrl, err := newController(cfg)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), ctrl, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&opts.zone, "zone", "z", "", "Zone name (see `terrawatch zones`)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Start date YYYY-MM-DD (default 2020-01-01)")
	cmd.Flags().StringVar(&opts.to, "to", "", "End date YYYY-MM-DD (default 2024-01-01)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "txt", "Export format: txt or csv")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file or directory (default stdout)")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

// runReport evaluates a triggered pass and writes the artifact to out, or to
// opts.out when set. A directory gets the standard artifact filename.
func runReport(ctx context.Context, ctrl *session.Controller, opts reportOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	period, err := parsePeriodParams(opts.from, opts.to)
	if err != nil {
		return err
	}
	view, err := ctrl.Evaluate(ctx, session.Input{Zone: opts.zone, Period: period, Triggered: true})
	if err != nil {
		return err
	}
	artifact, err := export.Build(format, view.Zone, view.Period, *view.Report)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = out.Write(artifact.Data)
		return err
	}
	path := opts.out
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, artifact.Filename)
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(errOut, "wrote %s (%s)\n", path, humanize.Bytes(uint64(len(artifact.Data))))
	return nil
}
