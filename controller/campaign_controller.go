// controller/campaign_controller.go
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

type CampaignController struct {
	campaignService service.ICampaignService
}

func NewCampaignController(campaignService service.ICampaignService) *CampaignController {
	return &CampaignController{
		campaignService: campaignService,
	}
}

// RegisterRoutes registers the campaign API routes
func (cc *CampaignController) RegisterRoutes(r *gin.RouterGroup) {
	campaigns := r.Group("/campaigns")
	{
		campaigns.POST("", cc.CreateCampaign)
		campaigns.PUT("/:id", cc.UpdateCampaign)
		campaigns.DELETE("/:id", cc.DeleteCampaign)
		campaigns.GET("/:id", cc.GetCampaign)
		campaigns.GET("", cc.ListCampaigns)
	}
}

// CreateCampaign endpoint
func (cc *CampaignController) CreateCampaign(c *gin.Context) {
	var campaign model.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid campaign data", pw_errors.ErrInvalidCampaignData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pw_errors.ErrUnauthorized)
		return
	}

	createdCampaign, err := cc.campaignService.CreateCampaign(c, campaign, creatorID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrInvalidCampaignData) {
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create campaign", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusCreated, createdCampaign)
}

// UpdateCampaign endpoint
func (cc *CampaignController) UpdateCampaign(c *gin.Context) {
	campaignID := c.Param("id")
	var campaign model.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid campaign data", err)
		return
	}
	campaign.ID = campaignID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedCampaign, err := cc.campaignService.UpdateCampaign(c, campaign, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrCampaignNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Campaign not found", err)
		case errors.Is(err, pw_errors.ErrInvalidCampaignData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update campaign", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, updatedCampaign)
}

// DeleteCampaign endpoint
func (cc *CampaignController) DeleteCampaign(c *gin.Context) {
	campaignID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := cc.campaignService.DeleteCampaign(c, campaignID, deleterID); err != nil {
		if errors.Is(err, pw_errors.ErrCampaignNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Campaign not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete campaign", err)
		}
		return
	}

	util.RespondWithMessage(c, http.StatusOK, "Campaign deleted successfully")
}

// GetCampaign endpoint
func (cc *CampaignController) GetCampaign(c *gin.Context) {
	campaignID := c.Param("id")

	campaign, err := cc.campaignService.GetCampaign(c, campaignID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrCampaignNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Campaign not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve campaign", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, campaign)
}

// ListCampaigns endpoint
func (cc *CampaignController) ListCampaigns(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	campaigns, err := cc.campaignService.ListCampaigns(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list campaigns", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, campaigns)
}
