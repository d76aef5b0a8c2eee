package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/api"
	"github.com/talentsift/talentsift/internal/logger"
	"github.com/talentsift/talentsift/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background ingestion scheduler",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("no-scheduler", false, "disable the background ingestion scheduler")
	viper.BindPFlag("no-scheduler", serveCmd.Flags().Lookup("no-scheduler"))
}

func serve() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	cfg, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApplication(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("building application", zap.Error(err))
	}
	defer app.Close()

	if app.orch != nil && !viper.GetBool("no-scheduler") {
		scheduler := pipeline.NewScheduler(app.orch,
			time.Duration(cfg.Ingestion.IntervalSeconds)*time.Second, zlog)
		// Cycles run detached from the signal context so a shutdown
		// lets the in-flight cycle finish; Stop below waits for it.
		scheduler.Start(context.Background())
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewServer(app.orch, app.store, app.engine, zlog).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("starting http server", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
