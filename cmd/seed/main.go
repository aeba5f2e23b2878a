package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"tourshop/internal/app/config"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etproduct"
	"tourshop/internal/app/domains/modules/mdnotify"
	"tourshop/internal/app/domains/modules/mduser"
	"tourshop/internal/app/domains/repo/rpproduct"
	"tourshop/internal/app/domains/repo/rpuser"
	"tourshop/internal/app/domains/services/svuser"
	"tourshop/internal/app/infra/mq/lmstfy"
	"tourshop/internal/app/infra/persistence/database"
	"tourshop/internal/app/pkg/logger"
)

// 演示目录：每个类目一件商品
var catalog = []etproduct.Product{
	{Code: "VUE-LIM-CUZ", Description: "Vuelo Lima - Cusco", Category: etorder.CategoryVuelo, Price: decimal.RequireFromString("189.90"), Active: true},
	{Code: "HOT-CUZ-3N", Description: "Hotel Cusco 3 noches", Category: etorder.CategoryHotel, Price: decimal.RequireFromString("320.00"), Active: true},
	{Code: "PAQ-MAPI-4D", Description: "Paquete Machu Picchu 4 días", Category: etorder.CategoryPaquete, Price: decimal.RequireFromString("899.00"), Active: true},
	{Code: "AUT-LIM-1D", Description: "Alquiler de auto Lima 1 día", Category: etorder.CategoryAuto, Price: decimal.RequireFromString("75.50"), Active: true},
	{Code: "EXC-PARACAS", Description: "Excursión Islas Ballestas", Category: etorder.CategoryExcursion, Price: decimal.RequireFromString("120.00"), Active: true},
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	adminEmail := flag.String("admin-email", "admin@tourshop.local", "管理员邮箱")
	adminPassword := flag.String("admin-password", os.Getenv("TOURSHOP_SEED_ADMIN_PASSWORD"), "管理员密码")
	demoPassword := flag.String("demo-password", "", "演示客户密码，为空时不创建")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *adminPassword == "" {
		log.Fatalf("admin password is required")
	}

	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 签发 token 不在此处使用
	userService := svuser.NewUserService(mduser.NewUserModule(rpuser.NewUserRepository(db)), nil)
	if cfg.Lmstfy.Host != "" {
		lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		userService.WithNotifier(mdnotify.NewNotifyModule(lmstfyClient, cfg.Lmstfy.NotifyQueue, appLogger))
	}
	seedUser(ctx, appLogger, userService, "Administrador", *adminEmail, *adminPassword, etprimitive.RoleAdmin, "operaciones")
	if *demoPassword != "" {
		seedUser(ctx, appLogger, userService, "Cliente Demo", "cliente@tourshop.local", *demoPassword, etprimitive.RoleCliente, "")
	}

	productRepo := rpproduct.NewProductRepository(db)
	for i := range catalog {
		if err := productRepo.Upsert(ctx, &catalog[i]); err != nil {
			log.Fatalf("Failed to upsert product %s: %v", catalog[i].Code, err)
		}
		appLogger.Info("Product seeded", "code", catalog[i].Code, "category", catalog[i].Category)
	}
}

func seedUser(ctx context.Context, log logger.Logger, svc *svuser.UserService, name, email, password string, role etprimitive.Role, department string) {
	user, err := svc.CreateUser(ctx, name, email, password, role, department)
	switch {
	case errors.Is(err, svuser.ErrEmailExists):
		log.Info("User already exists", "email", email)
	case err != nil:
		log.Error("Failed to seed user", "email", email, "error", err)
		os.Exit(1)
	default:
		log.Info("User seeded", "user_id", user.ID, "email", email, "role", role)
	}
}
