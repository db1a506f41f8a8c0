package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
	"github.com/adrianlee69dev/advantage-survey/internal/policy"
)

type ResponseService struct {
	db      *gorm.DB
	surveys *SurveyService
}

func NewResponseService(db *gorm.DB, surveys *SurveyService) *ResponseService {
	return &ResponseService{db: db, surveys: surveys}
}

type AnswerInput struct {
	QuestionID uuid.UUID
	TextValue  *string
	BoolValue  *bool
	RankValue  *int
}

// matchesType checks that the populated value fits the question's declared
// type, including the 1..rank_max range for rank answers.
func (a AnswerInput) matchesType(q models.Question) error {
	switch q.Type {
	case models.QuestionTypeText:
		if a.TextValue == nil {
			return invalidf("question %s expects a text_value", q.ID)
		}
	case models.QuestionTypeTrueFalse:
		if a.BoolValue == nil {
			return invalidf("question %s expects a bool_value", q.ID)
		}
	case models.QuestionTypeRank:
		if a.RankValue == nil {
			return invalidf("question %s expects a rank_value", q.ID)
		}
		if q.RankMax != nil && (*a.RankValue < 1 || *a.RankValue > *q.RankMax) {
			return invalidf("rank_value for question %s must be between 1 and %d", q.ID, *q.RankMax)
		}
	}
	return nil
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// checkCoverage verifies that the answered question-ID set equals the
// survey's question-ID set exactly, naming any missing or extraneous IDs.
func checkCoverage(questions []models.Question, answers []AnswerInput) error {
	want := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		want[q.ID] = true
	}
	got := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		got[a.QuestionID] = true
	}

	var missing, extra []uuid.UUID
	for id := range want {
		if !got[id] {
			missing = append(missing, id)
		}
	}
	for id := range got {
		if !want[id] {
			extra = append(extra, id)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing answers for questions: %s", joinIDs(missing)))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("answers for unknown questions: %s", joinIDs(extra)))
	}
	return invalidf("answers must cover all questions exactly (%s)", strings.Join(parts, "; "))
}

// Submit validates full coverage and value shapes, then writes the response
// and all its answers in one transaction. No partial write survives an
// error: either the response row and every answer row land, or none do.
func (s *ResponseService) Submit(actor models.User, surveyID uuid.UUID, answers []AnswerInput) (*models.Response, error) {
	if !actor.IsAnswerer() {
		return nil, forbiddenf("only answerers can submit responses")
	}

	survey, err := s.surveys.getByID(surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.IsPublished {
		return nil, forbiddenf("survey is not published")
	}

	if err := checkCoverage(survey.Questions, answers); err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Question, len(survey.Questions))
	for _, q := range survey.Questions {
		byID[q.ID] = q
	}
	for _, a := range answers {
		if err := a.matchesType(byID[a.QuestionID]); err != nil {
			return nil, err
		}
	}

	response := models.Response{SurveyID: surveyID, AnswererID: actor.ID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		for _, a := range answers {
			answer := models.Answer{
				ResponseID: response.ID,
				QuestionID: a.QuestionID,
				TextValue:  a.TextValue,
				BoolValue:  a.BoolValue,
				RankValue:  a.RankValue,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getByID(response.ID)
}

func (s *ResponseService) getByID(id uuid.UUID) (*models.Response, error) {
	var response models.Response
	err := s.db.Preload("Answers").First(&response, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("response %s", id)
		}
		return nil, err
	}
	return &response, nil
}

// requireManage loads the survey and checks owner/shared-admin rights.
func (s *ResponseService) requireManage(actor models.User, surveyID uuid.UUID) (*models.Survey, error) {
	survey, err := s.surveys.getByID(surveyID)
	if err != nil {
		return nil, err
	}
	hasGrant, err := s.surveys.hasGrant(surveyID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManage(actor, *survey, hasGrant) {
		return nil, forbiddenf("no access to this survey")
	}
	return survey, nil
}

func (s *ResponseService) ListForSurvey(actor models.User, surveyID uuid.UUID) ([]models.Response, error) {
	if _, err := s.requireManage(actor, surveyID); err != nil {
		return nil, err
	}

	var responses []models.Response
	err := s.db.Preload("Answers").
		Where("survey_id = ?", surveyID).
		Order("submitted_at DESC").
		Find(&responses).Error
	return responses, err
}

// ListOwn returns the actor's own responses for a survey, most recent
// first. Multiple responses per answerer are permitted.
func (s *ResponseService) ListOwn(actor models.User, surveyID uuid.UUID) ([]models.Response, error) {
	if _, err := s.surveys.getByID(surveyID); err != nil {
		return nil, err
	}

	var responses []models.Response
	err := s.db.Preload("Answers").
		Where("survey_id = ? AND answerer_id = ?", surveyID, actor.ID).
		Order("submitted_at DESC").
		Find(&responses).Error
	return responses, err
}

func (s *ResponseService) Get(actor models.User, surveyID, responseID uuid.UUID) (*models.Response, error) {
	if _, err := s.requireManage(actor, surveyID); err != nil {
		return nil, err
	}

	response, err := s.getByID(responseID)
	if err != nil {
		return nil, err
	}
	if response.SurveyID != surveyID {
		return nil, notFoundf("response %s", responseID)
	}
	return response, nil
}

// Aggregate recomputes the per-question statistics for a survey from the
// full answer set. O(R*A) per call; fine at survey scale, and it keeps
// submission writes free of counter maintenance.
func (s *ResponseService) Aggregate(actor models.User, surveyID uuid.UUID) (*AggregateResult, error) {
	survey, err := s.requireManage(actor, surveyID)
	if err != nil {
		return nil, err
	}

	var responses []models.Response
	if err := s.db.Preload("Answers").
		Where("survey_id = ?", surveyID).
		Find(&responses).Error; err != nil {
		return nil, err
	}

	result := BuildAggregate(*survey, survey.Questions, responses)
	return &result, nil
}
