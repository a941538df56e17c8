package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/handlers"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/router"
	"github.com/taskboard/taskboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
	)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	priorityService := services.NewPriorityService(priorityRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, categoryRepo, priorityRepo, userRepo)

	// Assemble the router
	r := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		User:     handlers.NewUserHandler(userService),
		Project:  handlers.NewProjectHandler(projectService),
		Category: handlers.NewCategoryHandler(categoryService),
		Priority: handlers.NewPriorityHandler(priorityService),
		Task:     handlers.NewTaskHandler(taskService),
		Tokens:   tokenService,
	})

	// Start server
	logrus.WithField("port", cfg.ServerPort).Info("server starting")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
