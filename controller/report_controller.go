// controller/report_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

type ReportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// RegisterRoutes registers the report API routes
func (rc *ReportController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports", rc.ListReports)
}

// RegisterPublicRoutes registers routes exempt from authentication.
func (rc *ReportController) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/health/crm", rc.GatewayHealth)
}

// ListReports endpoint
func (rc *ReportController) ListReports(c *gin.Context) {
	token := bearerToken(c)

	reports, err := rc.reportService.ListReports(c, token)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrUnauthorized):
			util.RespondWithError(c, http.StatusUnauthorized, "Session rejected by the report service", err)
		case errors.Is(err, pw_errors.ErrGatewayTimeout):
			util.RespondWithError(c, http.StatusGatewayTimeout, "Report service timed out", err)
		case errors.Is(err, pw_errors.ErrGatewayUnavailable):
			util.RespondWithError(c, http.StatusServiceUnavailable, "Report service unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reports", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, reports)
}

// GatewayHealth endpoint
func (rc *ReportController) GatewayHealth(c *gin.Context) {
	health, err := rc.reportService.GatewayHealth(c)
	if err != nil {
		util.RespondWithError(c, http.StatusServiceUnavailable, "CRM gateway unreachable", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, health)
}
