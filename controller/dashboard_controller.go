// controller/dashboard_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

type DashboardController struct {
	dashboardService service.IDashboardService
}

func NewDashboardController(dashboardService service.IDashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers the dashboard API routes
func (dc *DashboardController) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/stats", dc.GetStats)
		dashboard.GET("/appointments/today", dc.TodayAppointments)
		dashboard.GET("/wallet", dc.WalletBalance)
	}
}

// GetStats endpoint
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.dashboardService.GetStats(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, stats)
}

// TodayAppointments endpoint
func (dc *DashboardController) TodayAppointments(c *gin.Context) {
	appointments, err := dc.dashboardService.TodayAppointments(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load today's appointments", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, appointments)
}

// WalletBalance endpoint
func (dc *DashboardController) WalletBalance(c *gin.Context) {
	token := bearerToken(c)

	balance, err := dc.dashboardService.WalletBalance(c, token)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrUnauthorized):
			util.RespondWithError(c, http.StatusUnauthorized, "Session rejected by the wallet service", err)
		case errors.Is(err, pw_errors.ErrGatewayTimeout):
			util.RespondWithError(c, http.StatusGatewayTimeout, "Wallet service timed out", err)
		case errors.Is(err, pw_errors.ErrGatewayUnavailable):
			util.RespondWithError(c, http.StatusServiceUnavailable, "Wallet service unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load wallet balance", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, balance)
}

// bearerToken extracts the raw token from the Authorization header, empty
// when absent. Authorization decisions belong to the middleware, not here.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
