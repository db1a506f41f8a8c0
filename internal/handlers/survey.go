package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adrianlee69dev/advantage-survey/internal/middleware"
	"github.com/adrianlee69dev/advantage-survey/internal/services"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
}

func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

type CreateSurveyRequest struct {
	Title       string  `json:"title" binding:"required" example:"Team health check"`
	Description *string `json:"description" example:"Quarterly pulse survey"`
}

type ShareSurveyRequest struct {
	AdminID uuid.UUID `json:"admin_id" binding:"required" example:"7b8adf5e-1fd5-4c4e-9d1b-0d4a6a0f3a10"`
}

// CreateSurvey godoc
// @Summary      Create a survey
// @Description  Create an unpublished survey owned by the current admin
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        request body CreateSurveyRequest true "Survey data"
// @Success      201 {object} Survey
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	survey, err := h.surveyService.Create(middleware.CurrentUser(c), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, survey)
}

// ListSurveys godoc
// @Summary      List visible surveys
// @Description  Admins see owned plus shared surveys; answerers see published ones
// @Tags         surveys
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Success      200 {array} Survey
// @Router       /api/surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary      Get a survey with its questions
// @Tags         surveys
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {object} Survey
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Get(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// PublishSurvey godoc
// @Summary      Publish a survey
// @Description  Owner only. Idempotent and irreversible.
// @Tags         surveys
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {object} Survey
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/publish [patch]
func (h *SurveyHandler) PublishSurvey(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Publish(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// ShareSurvey godoc
// @Summary      Share survey management with another admin
// @Description  Owner only; the grantee must be an admin and not already granted
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Param        request body ShareSurveyRequest true "Grantee"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/surveys/{id}/share [post]
func (h *SurveyHandler) ShareSurvey(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req ShareSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.surveyService.Share(middleware.CurrentUser(c), surveyID, req.AdminID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "survey access granted"})
}
