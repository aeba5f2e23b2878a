package main

// @title           Tourshop Orders API
// @version         1.0
// @description     旅游商城订单生命周期与付款核验后端 API
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourshop/internal/app/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化应用
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 3. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting HTTP server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 5. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		app.Logger.Info("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server, app)
	case err := <-serverErrChan:
		app.Logger.Error("HTTP server error", "error", err)
		cleanup()
		os.Exit(1)
	}

	app.Logger.Info("Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(server *http.Server, app *App) {
	// 1. 停止 HTTP Server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		app.Logger.Error("HTTP server shutdown error", "error", err)
	} else {
		app.Logger.Info("HTTP server stopped gracefully")
	}

	// 2. 等待在途的通知入队
	app.NotifyModule.Wait()
	app.Logger.Info("Pending notifications flushed")
}
