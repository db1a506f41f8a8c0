package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adrianlee69dev/advantage-survey/internal/middleware"
	"github.com/adrianlee69dev/advantage-survey/internal/models"
	"github.com/adrianlee69dev/advantage-survey/internal/services"
)

type QuestionHandler struct {
	surveyService *services.SurveyService
}

func NewQuestionHandler(surveyService *services.SurveyService) *QuestionHandler {
	return &QuestionHandler{surveyService: surveyService}
}

type CreateQuestionRequest struct {
	Text       string              `json:"text" binding:"required" example:"How do you rate the onboarding?"`
	Type       models.QuestionType `json:"type" binding:"required" example:"rank"`
	RankMax    *int                `json:"rank_max" example:"5"`
	OrderIndex int                 `json:"order_index" example:"0"`
}

// AddQuestion godoc
// @Summary      Add a question to a survey
// @Description  Owner only; rejected once the survey has any responses
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Param        request body CreateQuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/surveys/{id}/questions [post]
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.surveyService.AddQuestion(middleware.CurrentUser(c), surveyID, services.QuestionInput{
		Text:       req.Text,
		Type:       req.Type,
		RankMax:    req.RankMax,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary      List a survey's questions
// @Description  Ordered by order_index; visibility-filtered
// @Tags         questions
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {array} Question
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	questions, err := h.surveyService.ListQuestions(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}
