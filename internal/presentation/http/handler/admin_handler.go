package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
)

// AdminHandler handles administrative maintenance HTTP requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// WipeTransactions handles wiping all transactional data. Master data
// (users, vendors, ingredients, recipes) survives; stock levels and
// document sequences are reset.
func (h *AdminHandler) WipeTransactions(c *gin.Context) {
	if err := h.adminService.DeleteAllTransactions(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "All transactional data deleted", nil)
}

// SeedTransactions handles generating demo transactions across a date range
func (h *AdminHandler) SeedTransactions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Days int `json:"days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.adminService.SeedTransactions(c.Request.Context(), *userID, req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Demo transactions seeded successfully", result)
}
