package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/flagencoder/pkg/datastructure"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/logger"
	"github.com/lintang-b-s/flagencoder/pkg/osmparser"
	"github.com/lintang-b-s/flagencoder/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("f", "./data/solo_jogja.osm.pbf", "openstreetmap pbf file")
	outFile   = flag.String("o", "./data/solo_jogja.flags", "output edge flags file")
	configDir = flag.String("config", "./data/", "directory containing config.yaml")
	workers   = flag.Int("workers", 0, "number of way encoding workers (0 = GOMAXPROCS)")
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
	log.Info("encoding manager ready", zap.String("encoders", em.VersionString()),
		zap.Int("used_bits", em.UsedBits()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viper.SetDefault("IMPORT_WORKERS", 0)
	if *workers == 0 {
		*workers = viper.GetInt("IMPORT_WORKERS")
	}
	importer := osmparser.NewImporter(em, log, osmparser.WithWorkers(*workers))
	storage, err := importer.Parse(ctx, *mapFile)
	if err != nil {
		log.Fatal("failed to import ways", zap.String("file", *mapFile), zap.Error(err))
	}

	if err := storage.WriteEdgeFlags(*outFile, em); err != nil {
		log.Fatal("failed to write edge flags", zap.String("file", *outFile), zap.Error(err))
	}

	if _, err := datastructure.ReadEdgeFlags(*outFile, em); err != nil {
		log.Fatal("written edge flags are unreadable", zap.Error(err))
	}
	log.Info("edge flags written", zap.String("file", *outFile), zap.Int("edges", storage.NumberOfEdges()))
}
