package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/flagencoder/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/flagencoder/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/flagencoder/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type API struct {
	log     *zap.Logger
	limiter *rate.Limiter
}

// NewAPI. requestsPerSecond <= 0 disables rate limiting.
func NewAPI(log *zap.Logger, requestsPerSecond float64) *API {
	api := &API{log: log}
	if requestsPerSecond > 0 {
		api.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))
	}
	return api
}

// Handler. router wrapped in the middleware chain.
func (api *API) Handler(flagService controllers.FlagService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(flagService, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("/healthz"), Logger(api.log)}
	if api.limiter != nil {
		mwChain = append(mwChain, api.Limit)
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	flagService controllers.FlagService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(flagService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
