package app

import (
	"context"
	"forum-permission-service/internal/cache"
	"forum-permission-service/internal/config"
	"forum-permission-service/internal/kafka/consumer"
	"forum-permission-service/internal/kafka/notifier"
	"forum-permission-service/internal/permission"
	"forum-permission-service/internal/repository"
	"forum-permission-service/internal/repository/model"
	"forum-permission-service/internal/service"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func NewServices(logger *zap.SugaredLogger, cfg *config.Config, repo repository.Repository, c *cache.Cache,
	notif notifier.Notifier) *service.Services {

	builder := permission.NewModelBuilder(logger, repo, c)

	return &service.Services{
		Context:       service.NewContextService(logger, repo, c, builder, cfg.AdminRoleName),
		Authorization: service.NewAuthorizationService(logger, repo, builder),
		Admin:         service.NewAdminService(logger, repo, c, notif),
	}
}

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, repoCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	// Identifies this instance's invalidation messages
	origin := uuid.New().String()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	c, err := cache.NewCache(logger, cfg.Cache.Size, registry)
	if err != nil {
		logger.Fatalw("failed to create cache", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka, origin)
	consumer.NewKafkaConsumer(cfg.Kafka, logger, c, origin).Run(ctx, wg)

	services := NewServices(logger, cfg, repo, c, notif)

	ready := make(chan struct{})
	service.RunServices(ctx, logger, wg, cfg, registry, services, ready)

	go func() {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 0

		warm := func(ctx context.Context) error { return warmUp(ctx, services) }
		if err := waitUntilWarm(ctx, logger, b, warm); err != nil {
			return
		}
		close(ready)
	}()

	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	repoCancel()
	delayedWg.Wait()
}

// waitUntilWarm retries warm until it succeeds or ctx is done.
func waitUntilWarm(ctx context.Context, logger *zap.SugaredLogger, b backoff.BackOff, warm func(ctx context.Context) error) error {
	op := func() error { return warm(ctx) }
	notify := func(err error, next time.Duration) {
		logger.Warnw("failed to warm up permission cache", "error", err, "retryIn", next)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// warmUp loads the default site's forum table so the first requests don't
// all miss. It doubles as the readiness check for the store.
func warmUp(ctx context.Context, services *service.Services) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	site, err := services.Context.CurrentSite(ctx, model.DefaultSiteName)
	if err != nil {
		return err
	}

	_, err = services.Context.CurrentForums(ctx, site.Id)
	return err
}
