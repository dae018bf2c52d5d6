package controller

import (
	"net/http"

	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetAdminDashboard returns storewide order, revenue and customer stats
// GET /api/v1/dashboard/admin
func (ctrl *DashboardController) GetAdminDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dashboard, err := ctrl.dashboardService.GetAdminDashboard()
	if err != nil {
		log.Error("Failed to build admin dashboard", err, nil)
		apperrors.InternalError(c, "Failed to fetch dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetCustomerDashboard returns the user's own order summary
// GET /api/v1/dashboard
func (ctrl *DashboardController) GetCustomerDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := ctrl.dashboardService.GetCustomerDashboard(userID)
	if err != nil {
		log.Error("Failed to build customer dashboard", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
