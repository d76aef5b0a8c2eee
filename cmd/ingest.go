package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/logger"
	"github.com/talentsift/talentsift/internal/pipeline"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion cycle and exit",
	Run: func(_ *cobra.Command, _ []string) {
		ingest()
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func ingest() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	cfg, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	ctx := context.Background()
	app, err := buildApplication(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("building application", zap.Error(err))
	}
	defer app.Close()

	if app.orch == nil {
		zlog.Fatal("no ingestion source configured",
			zap.String("hint", "set gmail.credentials_path and gmail.token_path"))
	}

	outcomes, err := app.orch.RunCycle(ctx)
	if err != nil {
		zlog.Fatal("ingestion cycle failed", zap.Error(err))
	}

	for _, o := range outcomes {
		if o.Status == pipeline.OutcomeFailed {
			zlog.Warn("attachment failed",
				zap.String("filename", o.Filename), zap.Error(o.Err))
		}
	}
}
