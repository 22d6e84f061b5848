package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/listeners"
	"asset-system/internal/repositories"
	"asset-system/internal/services"
	"asset-system/pkg/config"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/filestorage"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
	"asset-system/pkg/websocket"
)

type Loggers struct {
	Main     *zap.Logger
	Auth     *zap.Logger
	Asset    *zap.Logger
	Workflow *zap.Logger
}

type handlers struct {
	auth          *controllers.AuthController
	office        *controllers.OfficeController
	division      *controllers.DivisionController
	asset         *controllers.AssetController
	assetImage    *controllers.AssetImageController
	pendingAction *controllers.PendingActionController
	maintenance   *controllers.MaintenanceController
	websocket     *controllers.WebSocketController
}

// InitRouter builds the object graph and mounts every route under /api. The
// returned evaluator is started by the caller.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	storage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	loggers *Loggers,
	cfg *config.Config,
) *services.AssetStatusEvaluator {
	loggers.Main.Info("InitRouter: building routes")

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	denyList := repositories.NewTokenDenyList(cacheRepo)
	authMW := middleware.NewAuthMiddleware(jwtSvc, denyList, loggers.Auth)

	// repositories
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	officeRepo := repositories.NewOfficeRepository(dbConn, loggers.Main)
	divisionRepo := repositories.NewDivisionRepository(dbConn, loggers.Main)
	assetRepo := repositories.NewAssetRepository(dbConn, loggers.Asset)
	actionRepo := repositories.NewPendingActionRepository(dbConn, loggers.Workflow)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn, loggers.Main)

	// services
	statsService := services.NewAssetStatsService(assetRepo, cacheRepo, cfg.Asset.StatsCacheTTL, loggers.Asset)
	numbers := services.NewAssetNumberGenerator(assetRepo, divisionRepo, loggers.Asset)
	evaluator := services.NewAssetStatusEvaluator(assetRepo, statsService, cfg.Asset.TroubleshootAfterDays, loggers.Asset)
	authService := services.NewAuthService(userRepo, cacheRepo, denyList, loggers.Auth, &cfg.Auth)
	officeService := services.NewOfficeService(officeRepo, statsService, loggers.Main)
	divisionService := services.NewDivisionService(divisionRepo, statsService, loggers.Main)
	assetService := services.NewAssetService(assetRepo, txManager, numbers, statsService, loggers.Asset)
	exportService := services.NewAssetExportService(assetService, loggers.Asset)
	imageService := services.NewAssetImageService(assetRepo, storage, loggers.Asset)
	pendingService := services.NewPendingActionService(actionRepo, assetRepo, txManager, numbers, statsService, bus, loggers.Workflow)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, loggers.Main)

	notifier := services.NewWebSocketNotificationService(hub, loggers.Workflow)
	listeners.NewPendingActionListener(notifier, loggers.Workflow).Register(bus)

	h := handlers{
		auth:          controllers.NewAuthController(authService, jwtSvc, loggers.Auth),
		office:        controllers.NewOfficeController(officeService, loggers.Main),
		division:      controllers.NewDivisionController(divisionService, loggers.Main),
		asset:         controllers.NewAssetController(assetService, statsService, exportService, evaluator, loggers.Asset),
		assetImage:    controllers.NewAssetImageController(imageService, loggers.Asset),
		pendingAction: controllers.NewPendingActionController(pendingService, loggers.Workflow),
		maintenance:   controllers.NewMaintenanceController(maintenanceService, loggers.Main),
		websocket:     controllers.NewWebSocketController(hub, jwtSvc, denyList, loggers.Main),
	}
	registerRoutes(e, h, authMW)

	loggers.Main.Info("InitRouter: routes ready")
	return evaluator
}

func registerRoutes(e *echo.Echo, h handlers, authMW *middleware.AuthMiddleware) {
	api := e.Group("/api")
	runAuthRouter(api, h.auth, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runOfficeRouter(secureGroup, h.office, authMW)
	runDivisionRouter(secureGroup, h.division, authMW)
	runAssetRouter(secureGroup, h.asset, h.assetImage, h.pendingAction, authMW)
	runPendingActionRouter(secureGroup, h.pendingAction, authMW)
	runMaintenanceRouter(secureGroup, h.maintenance)

	// token travels in the query string, see WebSocketController.ServeWs
	e.GET("/api/ws", h.websocket.ServeWs)
}
