package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/campushub/portal-auth"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := auth.NewConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid auth configuration: %v", err)
	}

	db, err := openDatabase()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repos := auth.NewRepositoryManager(db)
	if err := repos.Validate(); err != nil {
		log.Fatalf("invalid repository setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bootstrapSchema(ctx, repos); err != nil {
		cancel()
		log.Fatalf("bootstrap schema: %v", err)
	}
	cancel()

	tokens, err := auth.NewTokenService(cfg.GetSigningKey(), cfg.GetTokenExpiration(), cfg.Issuer, nil)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	store := auth.NewCredentialStore(repos.Users())
	registrar := auth.NewRegisterUserHandler(store).
		WithHashCost(cfg.HashCost)
	auther := auth.NewAuthenticator(store, tokens)

	app := fiber.New(fiber.Config{
		AppName: "campus-portal-auth",
	})
	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.RegisterAuthRoutes(app.Group("/auth"),
		auth.WithRegistrar(registrar),
		auth.WithAuthenticator(auther),
		auth.WithTokenIssuer(tokens),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openDatabase() (*bun.DB, error) {
	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = "file:portal.db?cache=shared"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func bootstrapSchema(ctx context.Context, repos auth.RepositoryManager) error {
	return repos.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewCreateTable().
			Model((*auth.User)(nil)).
			IfNotExists().
			Exec(ctx)
		return err
	})
}
