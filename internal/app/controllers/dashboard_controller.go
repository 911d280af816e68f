package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/app/services"
	"github.com/ItsRyS/pms-server/internal/middleware"
)

// DashboardController serves the admin landing-page aggregates
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Overview returns the workflow counters and release statistics.
func (c *DashboardController) Overview(ctx *gin.Context) {
	overview, err := c.dashboardService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview))
}
