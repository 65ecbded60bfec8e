package bootstrap

import (
	"context"
	"log"
	"strings"

	"rnd-intake-be/internal/config"
	"rnd-intake-be/internal/controller"
	"rnd-intake-be/internal/handler"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/pkg/mailer"
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/memory"
	"rnd-intake-be/internal/repository/rediscache"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/internal/service"
	"rnd-intake-be/pkg/bus"
	"rnd-intake-be/pkg/events"
	"rnd-intake-be/pkg/metrics"
	pktNats "rnd-intake-be/pkg/nats"
	"rnd-intake-be/pkg/notify"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RequestController controller.IRequestController
	StatsController   controller.IStatsController
	RDGroupController controller.IRDGroupController

	// Handlers
	NotificationHandler *handler.NotificationHandler

	// Background Services (Exposed for main.go to run)
	NotificationService *service.NotificationService

	Metrics *metrics.Metrics
	Logger  logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	notifyLogger := logger.NewIsolatedLogger("logs/notification.log")
	appMetrics := metrics.New()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	c := &Container{Metrics: appMetrics, Logger: sysLogger}

	// 2. Event Bus
	publisher, subscriber := c.newEventBus(cfg)

	// 3. Stats Cache
	statsCache := c.newStatsCache(cfg)

	// 4. Services
	notifier := notify.NewEventPublisher(publisher, sysLogger, strings.TrimRight(cfg.App.ClientURL, "/"))

	requestService := service.NewRequestService(uowFactory, notifier, appMetrics, statsCache, sysLogger)
	stageTargetService := service.NewStageTargetService(uowFactory, notifier, appMetrics, sysLogger)
	statsService := service.NewStatsService(uowFactory, statsCache, sysLogger)
	rdGroupService := service.NewRDGroupService(uowFactory, statsCache, sysLogger)

	c.NotificationService = service.NewNotificationService(
		uowFactory,
		subscriber,
		emailService,
		cfg.Notify.Recipients,
		appMetrics,
		notifyLogger,
	)

	// 5. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JWTSecret)
	c.RequestController = controller.NewRequestController(requestService, stageTargetService, auth)
	c.StatsController = controller.NewStatsController(statsService)
	c.RDGroupController = controller.NewRDGroupController(rdGroupService, auth)
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService, auth)

	return c
}

// newEventBus connects to NATS when EVENT_BUS=nats and falls back to the
// in-process GoChannel bus when NATS is unreachable.
func (c *Container) newEventBus(cfg *config.Config) (events.Publisher, events.Subscriber) {
	if strings.EqualFold(cfg.Events.Bus, "nats") {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Falling back to in-process bus", err)
		} else {
			natsSub, err := pktNats.NewSubscriber(cfg.Events.NatsURL)
			if err != nil {
				log.Printf("[WARN] Failed to connect to NATS Subscriber: %v. Falling back to in-process bus", err)
				natsPub.Close()
			} else {
				log.Printf("[INFO] Using event bus: NATS (%s)", cfg.Events.NatsURL)
				c.closers = append(c.closers, natsSub.Close, natsPub.Close)
				return natsPub, natsSub
			}
		}
	}

	goBus := bus.NewGoChannelBus()
	log.Printf("[INFO] Using event bus: in-process GoChannel")
	c.closers = append(c.closers, goBus.Close)
	return goBus, goBus
}

func (c *Container) newStatsCache(cfg *config.Config) contract.StatsCache {
	if strings.EqualFold(cfg.Cache.Driver, "redis") {
		opt, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Cache.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory stats cache", err)
			_ = rdb.Close()
		} else {
			log.Printf("[INFO] Using stats cache: Redis")
			c.closers = append(c.closers, func() { _ = rdb.Close() })
			return rediscache.NewStatsCache(rdb, cfg.Cache.TTL)
		}
	}

	log.Printf("[INFO] Using stats cache: in-memory (ttl %s)", cfg.Cache.TTL)
	return memory.NewStatsCache(cfg.Cache.TTL)
}

// Close releases bus connections and cache clients in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if z, ok := c.Logger.(*logger.ZapLogger); ok {
		_ = z.Sync()
	}
}
