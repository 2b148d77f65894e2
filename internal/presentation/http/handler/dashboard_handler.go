package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and reporting HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles the operational dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// MTDCOGS handles the month-to-date cost-of-goods-sold report
func (h *DashboardHandler) MTDCOGS(c *gin.Context) {
	report, err := h.dashboardService.GetMTDCOGS(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "MTD COGS report retrieved successfully", report)
}

// Accounts handles the accounts dashboard
func (h *DashboardHandler) Accounts(c *gin.Context) {
	dashboard, err := h.dashboardService.GetAccountsDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts dashboard retrieved successfully", dashboard)
}
