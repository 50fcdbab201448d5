package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/http"
	"github.com/lintang-b-s/flagencoder/pkg/http/usecases"
	"github.com/lintang-b-s/flagencoder/pkg/logger"
	"github.com/lintang-b-s/flagencoder/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir    = flag.String("config", "./data/", "directory containing config.yaml")
	useRateLimit = flag.Bool("rate_limit", false, "enable the global request rate limiter")
)

func main() {
	flag.Parse()
	configErr := util.ReadConfig(*configDir)
	log, err := logger.NewWithLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // ignore
	if configErr != nil {
		log.Warn("config not loaded, using defaults", zap.Error(configErr))
	}
	viper.SetDefault("PROFILES", "car,motorcycle")
	viper.SetDefault("BYTES_FOR_FLAGS", 4)

	em, err := flagencoder.NewEncodingManager(viper.GetString("PROFILES"), viper.GetInt("BYTES_FOR_FLAGS"))
	if err != nil {
		log.Fatal("failed to build encoding manager", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flagService := usecases.NewFlagService(log, em)
	err = http.NewServer(log).Use(ctx, *useRateLimit, flagService)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("flag encoder server stopped", zap.Error(err))
		return
	}
	log.Info("flag encoder server stopped")
}
