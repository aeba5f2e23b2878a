package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/config"
	"tourshop/internal/app/domains/modules/mdevent"
	"tourshop/internal/app/domains/modules/mdnotify"
	"tourshop/internal/app/domains/modules/mdorder"
	"tourshop/internal/app/domains/modules/mdreceipt"
	"tourshop/internal/app/domains/modules/mduser"
	"tourshop/internal/app/domains/repo/rporder"
	"tourshop/internal/app/domains/repo/rpproduct"
	"tourshop/internal/app/domains/repo/rpuser"
	"tourshop/internal/app/domains/services/svorder"
	"tourshop/internal/app/domains/services/svuser"
	"tourshop/internal/app/infra/mq/kafka"
	"tourshop/internal/app/infra/mq/lmstfy"
	"tourshop/internal/app/infra/persistence/database"
	"tourshop/internal/app/infra/persistence/redis"
	"tourshop/internal/app/infra/storage"
	"tourshop/internal/app/pkg/idgen"
	"tourshop/internal/app/pkg/jwtx"
	"tourshop/internal/app/pkg/logger"
	authhandler "tourshop/internal/app/server/handlers/auth"
	orderhandler "tourshop/internal/app/server/handlers/order"
	"tourshop/internal/app/server/routers"
)

// App 应用依赖集合
type App struct {
	Engine       *gin.Engine
	NotifyModule *mdnotify.NotifyModule
	Logger       logger.Logger
}

// InitializeApp 组装应用依赖，返回 cleanup 释放底层连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}
	cleanups = append(cleanups, func() { _ = appLogger.Sync() })

	// 1. 数据库
	db, err := database.Open(cfg.Database)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("get sql.DB failed: %w", err)
	}
	cleanups = append(cleanups, func() { _ = sqlDB.Close() })
	if err := database.AutoMigrate(db); err != nil {
		cleanup()
		return nil, nil, err
	}
	appLogger.Info("Database connected", "driver", cfg.Database.Driver)

	// 2. 订单事件
	publisher, closePublisher, err := providePublisher(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, closePublisher)
	appLogger.Info("Order event publisher ready", "driver", cfg.Events.Driver)

	// 3. 付款凭证存储
	store, closeStore, err := provideBlobStore(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, closeStore)
	appLogger.Info("Receipt storage ready", "driver", cfg.Storage.Driver)

	// 4. Repository
	orderRepo := rporder.NewOrderRepository(db)
	userRepo := rpuser.NewUserRepository(db)
	productRepo := rpproduct.NewProductRepository(db)

	// 5. Module
	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	orderModule := mdorder.NewOrderModule(orderRepo, userRepo, productRepo)
	userModule := mduser.NewUserModule(userRepo)
	notifyModule := mdnotify.NewNotifyModule(lmstfyClient, cfg.Lmstfy.NotifyQueue, appLogger)
	eventModule := mdevent.NewEventModule(publisher, appLogger)
	receiptModule := mdreceipt.NewReceiptModule(store, cfg.App.PublicBaseURL, cfg.Storage.MaxBytes)

	// 6. Service
	issuer := jwtx.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	orderService := svorder.NewOrderService(
		orderModule,
		notifyModule,
		eventModule,
		receiptModule,
		idgen.NewSnowflakeIDGenerator(cfg.App.NodeID),
		cfg.Mail.OpsMailbox,
		appLogger,
	)
	userService := svuser.NewUserService(userModule, issuer)

	// 7. Handler & Router
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := routers.SetupRoutes(
		orderhandler.NewOrderHandler(orderService),
		authhandler.NewAuthHandler(userService),
		issuer,
		appLogger,
	)

	return &App{
		Engine:       engine,
		NotifyModule: notifyModule,
		Logger:       appLogger,
	}, cleanup, nil
}

func providePublisher(cfg *config.Config) (mdevent.Publisher, func(), error) {
	switch cfg.Events.Driver {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := redis.NewPubSubClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return mdevent.NewRedisPublisher(client, cfg.Events.Channel), func() { _ = client.Close() }, nil
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			return nil, nil, err
		}
		return mdevent.NewKafkaPublisher(producer), producer.Close, nil
	default:
		return mdevent.NopPublisher{}, func() {}, nil
	}
}

func provideBlobStore(cfg *config.Config) (storage.BlobStore, func(), error) {
	switch cfg.Storage.Driver {
	case "gridfs":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := storage.NewGridFSStore(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(ctx)
		}, nil
	default:
		store, err := storage.NewLocalStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
