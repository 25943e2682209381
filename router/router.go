// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pingwise/clinic-api/controller"
	"github.com/pingwise/clinic-api/middleware"
	"github.com/pingwise/clinic-api/util"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	// Public surface: auth, health probes and the same-origin CRM proxy.
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			util.RespondWithData(c, http.StatusOK, gin.H{"status": "ok"})
		})
		controllers.Auth.RegisterRoutes(public)
		controllers.Report.RegisterPublicRoutes(public)
		controllers.CRMProxy.RegisterRoutes(public)
	}

	// Everything else requires a valid bearer token.
	api := router.Group("/api")
	api.Use(middleware.BearerAuth())
	{
		controllers.Patient.RegisterRoutes(api)
		controllers.Appointment.RegisterRoutes(api)
		controllers.Team.RegisterRoutes(api)
		controllers.Campaign.RegisterRoutes(api)
		controllers.Dashboard.RegisterRoutes(api)
		controllers.Report.RegisterRoutes(api)
	}

	return router
}
