package main

import (
	"context"
	"log/slog"
	"os"

	"cardlink/config"
	"cardlink/internal/delivery"
	"cardlink/internal/delivery/http"
	"cardlink/internal/delivery/http/middleware"
	"cardlink/internal/delivery/http/router/handler"
	"cardlink/internal/domain/service"
	"cardlink/internal/infra/auth"
	"cardlink/internal/infra/geolocation"
	logs "cardlink/internal/infra/log"
	"cardlink/internal/infra/persistence/postgres"
	"cardlink/internal/infra/pubsub"
	"cardlink/internal/infra/qrcode"
	"cardlink/internal/infra/ratelimit"
	"cardlink/internal/infra/storage"
	"cardlink/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCardRepository,
			postgres.NewContactRepository,
			postgres.NewShareRepository,
			postgres.NewScanRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
			newLocationResolver,
			newRateLimiter,
			newImageStore,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "http://localhost:8080")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// newLocationResolver creates the IP location resolver and ties its cache
// sweeper to the application lifecycle.
func newLocationResolver(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) service.LocationResolver {
	resolver := geolocation.NewResolver(cfg, logger)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			resolver.StartSweeper()

			return nil
		},
		OnStop: func(context.Context) error {
			resolver.StopSweeper()

			return nil
		},
	})

	return resolver
}

// newRateLimiter creates the scan rate limiter and ties its window sweeper to
// the application lifecycle.
func newRateLimiter(lc fx.Lifecycle, cfg *config.Config) *ratelimit.Limiter {
	limiter := ratelimit.NewLimiter(cfg)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			limiter.StartSweeper()

			return nil
		},
		OnStop: func(context.Context) error {
			limiter.StopSweeper()

			return nil
		},
	})

	return limiter
}

// newImageStore opens the blob bucket and closes it on shutdown.
func newImageStore(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (service.ImageStore, error) {
	store, closer, err := storage.NewBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer()
		},
	})

	return store, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCardService,
			impl.NewContactService,
			impl.NewScanService,
			impl.NewUploadService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCardHandler,
			handler.NewScanHandler,
			handler.NewContactHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
