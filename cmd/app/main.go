package main

import (
	"os"

	dbadapter "besafe/internal/adapters/database"
	"besafe/internal/adapters/httpapi"
	redisadapter "besafe/internal/adapters/redis"
	"besafe/internal/config"
	"besafe/internal/core/post"
	postapp "besafe/internal/core/post/service"
	"besafe/internal/core/user"
	userapp "besafe/internal/core/user/service"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init()
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	jwtKey := []byte(os.Getenv("JWT_SECRET"))

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	postCache := redisadapter.NewPostCacheRedis(config.RedisClient)
	userSvc := userapp.NewUserService(userRepo, jwtKey, config.Logger)
	postSvc := postapp.NewPostService(postRepo, postCache, config.Logger)
	r := httpapi.SetupRoutes(userSvc, postSvc, jwtKey)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	config.Logger.Info("App is running...", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
