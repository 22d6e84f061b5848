package routes

import (
	"asset-system/internal/controllers"
	"asset-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runOfficeRouter(secureGroup *echo.Group, officeCtrl *controllers.OfficeController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/offices", officeCtrl.GetOffices)
	secureGroup.GET("/offices/:id", officeCtrl.FindOffice)
	secureGroup.POST("/offices", officeCtrl.CreateOffice, authMW.RequireAdmin)
	secureGroup.PUT("/offices/:id", officeCtrl.UpdateOffice, authMW.RequireAdmin)
	secureGroup.DELETE("/offices/:id", officeCtrl.DeleteOffice, authMW.RequireAdmin)
}

func runDivisionRouter(secureGroup *echo.Group, divisionCtrl *controllers.DivisionController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/divisions", divisionCtrl.GetDivisions)
	secureGroup.GET("/divisions/:id", divisionCtrl.FindDivision)
	secureGroup.POST("/divisions", divisionCtrl.CreateDivision, authMW.RequireAdmin)
	secureGroup.PUT("/divisions/:id", divisionCtrl.UpdateDivision, authMW.RequireAdmin)
	secureGroup.DELETE("/divisions/:id", divisionCtrl.DeleteDivision, authMW.RequireAdmin)
}
