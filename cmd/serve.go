package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the jobfit HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address, e.g. :8000")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx := context.Background()

	zlog, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting jobfit",
		zap.String("version", version),
		zap.String("address", config.Server.Address),
	)

	pipeline, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building analysis pipeline", zap.Error(err))
	}

	srv := server.New(config.Server.Address, pipeline, zlog)
	if err := srv.Start(); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
