package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adrianlee69dev/advantage-survey/internal/middleware"
	"github.com/adrianlee69dev/advantage-survey/internal/services"
)

type ResponseHandler struct {
	responseService *services.ResponseService
}

func NewResponseHandler(responseService *services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

type AnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	TextValue  *string   `json:"text_value"`
	BoolValue  *bool     `json:"bool_value"`
	RankValue  *int      `json:"rank_value"`
}

// populated counts the value fields carried by the answer; exactly one is
// legal and this is the schema boundary that enforces it.
func (a AnswerRequest) populated() int {
	n := 0
	if a.TextValue != nil {
		n++
	}
	if a.BoolValue != nil {
		n++
	}
	if a.RankValue != nil {
		n++
	}
	return n
}

type SubmitResponseRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"required"`
}

// SubmitResponse godoc
// @Summary      Submit a response to a survey
// @Description  Answerer only; the survey must be published and every question answered exactly once
// @Tags         responses
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Param        request body SubmitResponseRequest true "Answers"
// @Success      201 {object} Response
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answers := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.populated() != 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "exactly one answer value must be provided per question"})
			return
		}
		answers = append(answers, services.AnswerInput{
			QuestionID: a.QuestionID,
			TextValue:  a.TextValue,
			BoolValue:  a.BoolValue,
			RankValue:  a.RankValue,
		})
	}

	response, err := h.responseService.Submit(middleware.CurrentUser(c), surveyID, answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses godoc
// @Summary      List all responses for a survey
// @Description  Owner or shared admin; most recent first
// @Tags         responses
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {array} Response
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	responses, err := h.responseService.ListForSurvey(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// ListMyResponses godoc
// @Summary      List the current user's responses for a survey
// @Tags         responses
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {array} Response
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses/me [get]
func (h *ResponseHandler) ListMyResponses(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	responses, err := h.responseService.ListOwn(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetAggregate godoc
// @Summary      Get aggregated statistics for a survey
// @Description  Owner or shared admin; one entry per question in question order
// @Tags         responses
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Success      200 {object} AggregateResult
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses/aggregate [get]
func (h *ResponseHandler) GetAggregate(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.responseService.Aggregate(middleware.CurrentUser(c), surveyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetResponse godoc
// @Summary      Get a single response with its answers
// @Description  Owner or shared admin; the response must belong to the survey
// @Tags         responses
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Param        id path string true "Survey ID"
// @Param        responseId path string true "Response ID"
// @Success      200 {object} Response
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses/{responseId} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	surveyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	responseID, ok := pathUUID(c, "responseId")
	if !ok {
		return
	}

	response, err := h.responseService.Get(middleware.CurrentUser(c), surveyID, responseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
