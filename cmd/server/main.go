package main

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"canteen-system/config"
	"canteen-system/internal/database"
	"canteen-system/internal/database/models"
	"canteen-system/internal/handlers"
	"canteen-system/internal/repository"
	"canteen-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.NewConnection(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = config.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
	}

	accounts := repository.NewAccountRepository(db)
	if err := seedAdminAccount(accounts, cfg.Auth); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	cache := handlers.NewSummaryCache(redisClient)

	deps := routerDeps{
		auth:      handlers.NewAuthHandler(accounts, cfg.Auth.TokenTTL),
		users:     handlers.NewUserHandler(repository.NewUserRepository(db), cache),
		items:     handlers.NewItemHandler(repository.NewItemRepository(db), cache),
		orders:    handlers.NewOrderHandler(repository.NewOrderRepository(db), cache),
		summaries: handlers.NewSummaryHandler(repository.NewSummaryRepository(db), cache),
		backup:    handlers.NewBackupHandler(cfg.DB.DSN, cfg.DB.Driver == database.DriverSQLite),
	}

	r := setupRouter(deps)

	log.Printf("🍛 Canteen system listening on %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

// seedAdminAccount creates the first login from env on an empty accounts
// table so a fresh deployment is reachable.
func seedAdminAccount(accounts *repository.AccountRepository, auth config.AuthConfig) error {
	ctx := context.Background()

	count, err := accounts.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if auth.SeedPassword == "" {
		log.Println("No accounts exist and SEED_ADMIN_PASSWORD is unset; skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(auth.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Printf("Seeding admin account %q", auth.SeedUsername)
	return accounts.Create(ctx, &models.Account{
		Username: auth.SeedUsername,
		Password: string(hash),
	})
}
