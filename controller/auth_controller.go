// controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterRoutes registers the auth API routes. These are public.
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
	}
}

// Register endpoint
func (ac *AuthController) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", pw_errors.ErrInvalidUserData)
		return
	}

	result, err := ac.authService.Register(c, req)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrUserConflict):
			util.RespondWithError(c, http.StatusBadRequest, "User already exists with this email", err)
		case errors.Is(err, pw_errors.ErrPasswordTooShort):
			util.RespondWithError(c, http.StatusBadRequest, "Password must be at least 6 characters", err)
		case errors.Is(err, pw_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to register user", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusCreated, result)
}

// Login endpoint. Upstream transport failures from the CRM gateway are
// distinguished: timeout maps to 504 and connection refused to 503.
func (ac *AuthController) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login data", pw_errors.ErrInvalidUserData)
		return
	}

	result, err := ac.authService.Login(c, req)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrInvalidCredentials):
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password", err)
		case errors.Is(err, pw_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, pw_errors.ErrGatewayTimeout):
			util.RespondWithError(c, http.StatusGatewayTimeout, "Login service timed out", err)
		case errors.Is(err, pw_errors.ErrGatewayUnavailable):
			util.RespondWithError(c, http.StatusServiceUnavailable, "Login service unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log in", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, result)
}
