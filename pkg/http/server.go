package http

import (
	"context"

	http_router "github.com/lintang-b-s/flagencoder/pkg/http/router"
	"github.com/lintang-b-s/flagencoder/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/flagencoder/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. blocks until ctx is canceled or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	flagService controllers.FlagService,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT", 50.0)

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	requestsPerSecond := 0.0
	if useRateLimit {
		requestsPerSecond = viper.GetFloat64("RATE_LIMIT")
	}
	api := http_router.NewAPI(s.Log, requestsPerSecond)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gctx, config, flagService)
	})

	return g.Wait()
}
