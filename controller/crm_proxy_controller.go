// controller/crm_proxy_controller.go
package controller

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/util"
)

// CRMProxyController forwards /api/crm/* to the CRM gateway on the same
// origin, so browser clients that cannot reach the gateway directly
// (cross-origin restrictions) still have a working path.
type CRMProxyController struct {
	proxy  *httputil.ReverseProxy
	target *url.URL
}

// NewCRMProxyController builds a reverse proxy for the gateway base URL.
// An empty baseURL disables the proxy; the controller then answers 503.
func NewCRMProxyController(baseURL, apiKey string) (*CRMProxyController, error) {
	if baseURL == "" {
		return &CRMProxyController{}, nil
	}

	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Host = target.Host
		req.URL.Path = strings.TrimPrefix(req.URL.Path, "/api/crm")
		if apiKey != "" {
			req.Header.Set("X-Api-Key", apiKey)
		}
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("CRM proxy request failed", zap.Error(err), zap.String("path", r.URL.Path))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"CRM gateway unreachable"}`))
	}

	return &CRMProxyController{proxy: proxy, target: target}, nil
}

// RegisterRoutes registers the proxy catch-all. These are public; the
// gateway enforces its own authentication on forwarded requests.
func (pc *CRMProxyController) RegisterRoutes(r *gin.RouterGroup) {
	r.Any("/crm/*path", pc.Forward)
}

// Forward endpoint
func (pc *CRMProxyController) Forward(c *gin.Context) {
	if pc.proxy == nil {
		util.RespondWithError(c, http.StatusServiceUnavailable, "CRM gateway is not configured", nil)
		return
	}
	pc.proxy.ServeHTTP(c.Writer, c.Request)
}
