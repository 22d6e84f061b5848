package routes

import (
	"asset-system/internal/controllers"
	"asset-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAssetRouter(secureGroup *echo.Group, assetCtrl *controllers.AssetController, imageCtrl *controllers.AssetImageController, pendingCtrl *controllers.PendingActionController, authMW *middleware.AuthMiddleware) {
	assets := secureGroup.Group("/assets")
	{
		assets.GET("", assetCtrl.GetAssets)
		assets.POST("", assetCtrl.CreateAsset)

		assets.GET("/stats", assetCtrl.GetStats)
		assets.GET("/category-distribution", assetCtrl.GetCategoryDistribution)
		assets.GET("/export", assetCtrl.ExportAssets, authMW.RequireAdmin)
		assets.POST("/evaluate-status", assetCtrl.EvaluateStatus, authMW.RequireAdmin)

		assets.GET("/:id", assetCtrl.FindAsset)
		assets.PUT("/:id", assetCtrl.UpdateAsset, authMW.RequireAdmin)
		assets.DELETE("/:id", assetCtrl.DeleteAsset, authMW.RequireAdmin)
		assets.POST("/:id/image", imageCtrl.UploadImage, authMW.RequireAdmin)
		assets.DELETE("/:id/image", imageCtrl.RemoveImage, authMW.RequireAdmin)

		assets.POST("/:id/delete-request", pendingCtrl.SubmitDeleteRequest)
		assets.POST("/:id/update-request", pendingCtrl.SubmitUpdateRequest)
	}
}

func runPendingActionRouter(secureGroup *echo.Group, pendingCtrl *controllers.PendingActionController, authMW *middleware.AuthMiddleware) {
	actions := secureGroup.Group("/pending-actions")
	{
		actions.GET("", pendingCtrl.GetPendingActions)
		actions.GET("/:id", pendingCtrl.FindPendingAction)
		actions.POST("/:id/approve", pendingCtrl.Approve, authMW.RequireAdmin)
		actions.POST("/:id/reject", pendingCtrl.Reject, authMW.RequireAdmin)
	}
}

func runMaintenanceRouter(secureGroup *echo.Group, maintenanceCtrl *controllers.MaintenanceController) {
	secureGroup.GET("/maintenances", maintenanceCtrl.GetMaintenances)
	secureGroup.GET("/maintenances/:id", maintenanceCtrl.FindMaintenance)
	secureGroup.POST("/maintenances", maintenanceCtrl.CreateMaintenance)
	secureGroup.PUT("/maintenances/:id", maintenanceCtrl.UpdateMaintenance)
	secureGroup.DELETE("/maintenances/:id", maintenanceCtrl.DeleteMaintenance)
}
