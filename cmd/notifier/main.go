package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourshop/internal/app/config"
	"tourshop/internal/app/consumer"
	"tourshop/internal/app/domains/services/svnotify"
	"tourshop/internal/app/infra/mail"
	"tourshop/internal/app/infra/mq/lmstfy"
	"tourshop/internal/app/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	workers := flag.Int("workers", 2, "并发消费协程数")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateNotifier(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Starting notification consumer...")

	// 3. 初始化基础设施组件
	mailer, err := mail.NewSMTPMailer(cfg.Mail)
	if err != nil {
		appLogger.Error("Failed to init mailer", "error", err)
		os.Exit(1)
	}
	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	appLogger.Info("Lmstfy client initialized", "host", cfg.Lmstfy.Host, "queue", cfg.Lmstfy.NotifyQueue)

	// 4. 初始化 Service 层
	notifyService, err := svnotify.NewNotifyService(mailer, appLogger)
	if err != nil {
		appLogger.Error("Failed to init notify service", "error", err)
		os.Exit(1)
	}

	// 5. 初始化 Consumer
	notificationConsumer := consumer.NewNotificationConsumer(
		lmstfyClient,
		notifyService,
		&consumer.Config{
			QueueName:    cfg.Lmstfy.NotifyQueue,
			Timeout:      cfg.Lmstfy.Timeout,
			TTR:          cfg.Lmstfy.TTR,
			Workers:      *workers,
			PollInterval: time.Second,
		},
		appLogger,
	)

	// 6. 启动消费循环（优雅退出）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		notificationConsumer.Start(ctx)
		close(done)
	}()

	<-sigChan
	appLogger.Info("Received shutdown signal, stopping consumer...")
	notificationConsumer.Shutdown()

	// 拉取阻塞最长 timeout 秒，超时后强制取消
	grace := time.Duration(cfg.Lmstfy.Timeout+5) * time.Second
	select {
	case <-done:
	case <-time.After(grace):
		cancel()
		<-done
	}
	appLogger.Info("Consumer stopped gracefully")
}
