package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roam/internal/models/request_models"
	"roam/internal/services"
	"roam/pkg/utils"
)

type SuggestController struct {
	suggestService services.SuggestServiceInterface
}

func NewSuggestController(suggestService services.SuggestServiceInterface) *SuggestController {
	return &SuggestController{
		suggestService: suggestService,
	}
}

func (s *SuggestController) CreateSuggestions(c *gin.Context) {
	var req request_models.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: lat, lng, window_minutes and mode are required")
		return
	}

	resp, err := s.suggestService.Suggest(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Suggestions generated successfully")
}
