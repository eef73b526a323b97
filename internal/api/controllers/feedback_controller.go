package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roam/internal/models/request_models"
	"roam/internal/services"
	"roam/pkg/utils"
)

type FeedbackController struct {
	suggestService services.SuggestServiceInterface
}

func NewFeedbackController(suggestService services.SuggestServiceInterface) *FeedbackController {
	return &FeedbackController{
		suggestService: suggestService,
	}
}

func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req request_models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: place_id and event_type are required")
		return
	}

	if err := f.suggestService.ForwardFeedback(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Feedback recorded")
}
