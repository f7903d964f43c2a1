// Команда seed создает схему и начальные данные: администратора
// и пару примерных задач. Единственный путь заведения пользователя
// с ролью admin, HTTP-маршрута для этого нет.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/magabrotheeeer/taskr/internal/config"
	"github.com/magabrotheeeer/taskr/internal/lib/password"
	"github.com/magabrotheeeer/taskr/internal/migrations"
	"github.com/magabrotheeeer/taskr/internal/models"
	"github.com/magabrotheeeer/taskr/internal/storage/repository"
)

func main() {
	adminName := flag.String("admin-name", "admin", "admin user name")
	adminEmail := flag.String("admin-email", "ad@min.com", "admin user email")
	adminPassword := flag.String("admin-password", "", "admin user password (required)")
	flag.Parse()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if *adminPassword == "" {
		logger.Error("flag -admin-password is required")
		os.Exit(1)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("err", err))
		os.Exit(1)
	}

	ctx := context.Background()

	hash, err := password.GetHash(*adminPassword)
	if err != nil {
		logger.Error("failed to hash admin password", slog.Any("err", err))
		os.Exit(1)
	}
	adminID, err := db.CreateUser(ctx, models.User{
		Name:         *adminName,
		Email:        *adminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		logger.Error("failed to create admin user", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("admin user created", slog.Int("id", adminID))

	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for _, t := range []models.Task{
		{
			Name:       "Finish this tutorial",
			DueDate:    today.AddDate(0, 1, 0),
			Priority:   10,
			PostedDate: today,
			Status:     models.StatusOpen,
			OwnerID:    adminID,
		},
		{
			Name:       "Finish Real Python Course 2",
			DueDate:    today.AddDate(0, 3, 0),
			Priority:   10,
			PostedDate: today,
			Status:     models.StatusOpen,
			OwnerID:    adminID,
		},
	} {
		id, err := db.CreateTask(ctx, t)
		if err != nil {
			logger.Error("failed to create task", slog.Any("err", err))
			os.Exit(1)
		}
		logger.Info("task created", slog.Int("id", id), slog.String("name", t.Name))
	}
}
