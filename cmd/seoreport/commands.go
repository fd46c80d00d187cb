package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"seoreport/internal/analytics"
	"seoreport/internal/app"
	brcfg "seoreport/internal/config"
	"seoreport/internal/logger"
	"seoreport/internal/pkg/jsonutil"
	"seoreport/internal/report"
)

const configEnv = "SEOREPORT_CONFIG"

type cliOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "seoreport",
		Short: "Build SEO performance report prompts from analytics snapshots",
		Long: `seoreport turns a combined SEO analytics snapshot (domain rank, keywords,
backlinks, on-page audit) into the system/user prompt pair used to write a
client-facing SEO performance report for the reporting period.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv(configEnv),
		"config file (.toml/.yaml); defaults to "+brcfg.DefaultPath+" when present")

	var save bool
	buildCmd := &cobra.Command{
		Use:   "build [snapshot.json|-]",
		Short: "Build the prompt bundle and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, args, save)
		},
	}
	buildCmd.Flags().BoolVar(&save, "save", false, "persist the bundle in the configured store")

	metricsCmd := &cobra.Command{
		Use:   "metrics [snapshot.json|-]",
		Short: "Print the derived metrics as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderMetricsTable(report.Derive(snap)))
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	chartCmd := &cobra.Command{
		Use:   "chart <id>",
		Short: "Render the chart page (and PNG when enabled) for a stored bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, opts, args[0])
		},
	}

	root.AddCommand(buildCmd, metricsCmd, serveCmd, chartCmd)
	return root
}

func loadConfig(opts *cliOptions) (*brcfg.Config, error) {
	cfg, err := brcfg.LoadOrDefault(strings.TrimSpace(opts.configPath))
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.App.Env)
	logger.SetLevel(cfg.App.LogLevel)
	return cfg, nil
}

func readSnapshot(cmd *cobra.Command, args []string) (analytics.Snapshot, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return analytics.Snapshot{}, fmt.Errorf("打开快照文件失败: %w", err)
		}
		defer f.Close()
		r = f
	}
	return analytics.DecodeReader(r)
}

func runBuild(cmd *cobra.Command, opts *cliOptions, args []string, save bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	snap, err := readSnapshot(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !save {
		builder, err := app.BuildPromptBuilder(cfg)
		if err != nil {
			return err
		}
		bundle, err := builder.Build(ctx, snap)
		if err != nil {
			return err
		}
		return jsonutil.Encode(cmd.OutOrStdout(), bundle)
	}
	svc, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()
	rec, err := svc.Generate(ctx, snap)
	if err != nil {
		return err
	}
	return jsonutil.Encode(cmd.OutOrStdout(), struct {
		ID     string        `json:"id"`
		Bundle report.Bundle `json:"bundle"`
	}{rec.ID, rec.Bundle})
}

func runServe(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(cmd.OutOrStdout(), "seoreport 启动完成，监听 %s。按 Ctrl+C 退出。\n", cfg.App.HTTPAddr)
	return a.Run(ctx)
}

func runChart(cmd *cobra.Command, opts *cliOptions, id string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if !cfg.Chart.Enabled {
		return fmt.Errorf("chart.enabled 未开启")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()
	out, err := svc.WriteChart(ctx, id)
	if err != nil {
		return err
	}
	return jsonutil.Encode(cmd.OutOrStdout(), out)
}
