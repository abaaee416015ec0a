package main

import (
	"log"
	"os"

	"picto-go/internal/config"
	"picto-go/internal/models"
	"picto-go/internal/repository"
	"picto-go/internal/service"
	"picto-go/internal/storage"

	"github.com/sirupsen/logrus"
)

// 过期账户清理工具,建议通过 cron 每天执行一次
func main() {
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewActivationTokenRepository(db)
	pictoRepo := repository.NewPictogramRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	store := storage.NewStore(cfg.Storage.Root, logger)
	mailService := service.NewMailService(cfg, logger)
	userService := service.NewUserService(userRepo, pictoRepo, audioRepo, routineRepo, tokenRepo, store, mailService, logger)
	cleanupService := service.NewCleanupService(userRepo, userService, logger)

	removed, err := cleanupService.Run()
	if err != nil {
		log.Fatalf("清理过期账户失败: %v", err)
	}

	logger.Infof("清理完成,共清除 %d 个过期账户", removed)
}
