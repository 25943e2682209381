// controller/team_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
	helper_util "github.com/pingwise/clinic-api/util/helper"
)

type TeamController struct {
	teamService service.ITeamService
}

func NewTeamController(teamService service.ITeamService) *TeamController {
	return &TeamController{
		teamService: teamService,
	}
}

// RegisterRoutes registers the team API routes
func (tc *TeamController) RegisterRoutes(r *gin.RouterGroup) {
	team := r.Group("/team")
	{
		team.POST("", tc.CreateTeamMember)
		team.PUT("/:id", tc.UpdateTeamMember)
		team.DELETE("/:id", tc.DeleteTeamMember)
		team.GET("/:id", tc.GetTeamMember)
		team.GET("", tc.ListTeamMembers)
	}
}

// CreateTeamMember endpoint
func (tc *TeamController) CreateTeamMember(c *gin.Context) {
	var member model.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid team member data", pw_errors.ErrInvalidTeamMemberData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pw_errors.ErrUnauthorized)
		return
	}

	createdMember, err := tc.teamService.CreateTeamMember(c, member, creatorID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrInvalidTeamMemberData) {
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create team member", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusCreated, createdMember)
}

// UpdateTeamMember endpoint
func (tc *TeamController) UpdateTeamMember(c *gin.Context) {
	memberID := c.Param("id")
	var member model.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid team member data", err)
		return
	}
	member.ID = memberID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedMember, err := tc.teamService.UpdateTeamMember(c, member, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrTeamMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Team member not found", err)
		case errors.Is(err, pw_errors.ErrInvalidTeamMemberData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update team member", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, updatedMember)
}

// DeleteTeamMember endpoint
func (tc *TeamController) DeleteTeamMember(c *gin.Context) {
	memberID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := tc.teamService.DeleteTeamMember(c, memberID, deleterID); err != nil {
		if errors.Is(err, pw_errors.ErrTeamMemberNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Team member not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete team member", err)
		}
		return
	}

	util.RespondWithMessage(c, http.StatusOK, "Team member deleted successfully")
}

// GetTeamMember endpoint
func (tc *TeamController) GetTeamMember(c *gin.Context) {
	memberID := c.Param("id")

	member, err := tc.teamService.GetTeamMember(c, memberID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrTeamMemberNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Team member not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve team member", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, member)
}

// ListTeamMembers endpoint
func (tc *TeamController) ListTeamMembers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	members, err := tc.teamService.ListTeamMembers(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list team members", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, members)
}
