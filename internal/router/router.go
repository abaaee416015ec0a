package router

import (
	"time"

	"picto-go/internal/config"
	"picto-go/internal/handler"
	"picto-go/internal/middleware"
	"picto-go/internal/repository"
	"picto-go/internal/service"
	"picto-go/internal/storage"
	"picto-go/internal/utils"
	"picto-go/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "图卡内容管理系统 API",
			"version": "1.0.0",
		})
	})

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewActivationTokenRepository(db)
	pictoRepo := repository.NewPictogramRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	// 文件存储
	store := storage.NewStore(cfg.Storage.Root, logger)

	// 登录与联系表单的频率限制
	loginLimiter := ratelimit.NewLimiter(redisClient, cfg.Redis.LoginMaxAttempts, cfg.Redis.GetLoginWindow(), "ratelimit:login:")
	contactLimiter := ratelimit.NewLimiter(redisClient, cfg.Redis.LoginMaxAttempts, time.Hour, "ratelimit:contact:")

	// 初始化Service
	mailService := service.NewMailService(cfg, logger)
	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager, mailService, cfg, logger)
	contentService := service.NewContentService(pictoRepo, audioRepo, userRepo, store, cfg, logger)
	routineService := service.NewRoutineService(routineRepo, userRepo, store, cfg, logger)
	userService := service.NewUserService(userRepo, pictoRepo, audioRepo, routineRepo, tokenRepo, store, mailService, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	pictoHandler := handler.NewPictogramHandler(contentService)
	audioHandler := handler.NewAudioHandler(contentService)
	routineHandler := handler.NewRoutineHandler(routineService)
	userHandler := handler.NewUserHandler(userService, contentService)
	contactHandler := handler.NewContactHandler(mailService)

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", middleware.RateLimit(loginLimiter, logger), authHandler.Login)
		api.GET("/activate/:token", authHandler.Activate)
		api.POST("/contact", middleware.RateLimit(contactLimiter, logger), contactHandler.Send)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		{
			// 用户信息
			authorized.GET("/me", authHandler.GetMe)
			authorized.POST("/logout", authHandler.Logout)
			authorized.POST("/deactivate", authHandler.Deactivate)
			authorized.GET("/user-storage/:user_id", userHandler.GetStorage)

			// 图片内容
			authorized.GET("/pictograms", pictoHandler.List)
			authorized.POST("/pictograms", pictoHandler.Create)
			authorized.GET("/pictograms/:id", pictoHandler.Get)
			authorized.PUT("/pictograms/:id", pictoHandler.Update)
			authorized.DELETE("/pictograms/:id", pictoHandler.Delete)

			// 音频内容
			authorized.GET("/audios", audioHandler.List)
			authorized.POST("/audios", audioHandler.Create)
			authorized.GET("/audios/:id", audioHandler.Get)
			authorized.PUT("/audios/:id", audioHandler.Update)
			authorized.DELETE("/audios/:id", audioHandler.Delete)

			// 例行程序
			authorized.GET("/routines", routineHandler.List)
			authorized.POST("/routines", routineHandler.Create)
			authorized.GET("/routines/:id", routineHandler.Get)
			authorized.PUT("/routines/:id", routineHandler.Update)
			authorized.DELETE("/routines/:id", routineHandler.Delete)

			// 用户管理,更新允许本人操作,列表和删除仅管理员
			authorized.GET("/users", middleware.StaffMiddleware(), userHandler.List)
			authorized.PUT("/users/:id", userHandler.Update)
			authorized.DELETE("/users/:id", middleware.StaffMiddleware(), userHandler.Delete)
		}
	}

	return r
}
