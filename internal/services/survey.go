package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
	"github.com/adrianlee69dev/advantage-survey/internal/policy"
)

type SurveyService struct {
	db *gorm.DB
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db}
}

// getByID loads a survey with its questions ordered by order_index. Equal
// indices keep insertion order via the created-id tiebreak being absent;
// the store returns them in insertion order.
func (s *SurveyService) getByID(id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("survey %s", id)
		}
		return nil, err
	}
	return &survey, nil
}

func (s *SurveyService) hasGrant(surveyID, adminID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.SurveyAccess{}).
		Where("survey_id = ? AND admin_id = ?", surveyID, adminID).
		Count(&count).Error
	return count > 0, err
}

func (s *SurveyService) hasResponses(db *gorm.DB, surveyID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Response{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count > 0, err
}

func (s *SurveyService) Create(actor models.User, title string, description *string) (*models.Survey, error) {
	if !actor.IsAdmin() {
		return nil, forbiddenf("only admins can create surveys")
	}

	survey := models.Survey{
		OwnerID:     actor.ID,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(&survey).Error; err != nil {
		return nil, err
	}
	return s.getByID(survey.ID)
}

func (s *SurveyService) Get(actor models.User, id uuid.UUID) (*models.Survey, error) {
	survey, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	hasGrant, err := s.hasGrant(id, actor.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor, *survey, hasGrant) {
		return nil, forbiddenf("no access to this survey")
	}
	return survey, nil
}

// List returns the surveys visible to the actor: for admins the union of
// owned and shared-access surveys (deduplicated), for answerers every
// published survey. Full-set semantics, no pagination.
func (s *SurveyService) List(actor models.User) ([]models.Survey, error) {
	if actor.IsAnswerer() {
		var published []models.Survey
		err := s.db.Where("is_published = ?", true).
			Order("created_at DESC").
			Find(&published).Error
		return published, err
	}

	var owned []models.Survey
	if err := s.db.Where("owner_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&owned).Error; err != nil {
		return nil, err
	}

	var shared []models.Survey
	if err := s.db.
		Joins("JOIN survey_accesses ON survey_accesses.survey_id = surveys.id").
		Where("survey_accesses.admin_id = ?", actor.ID).
		Order("surveys.created_at DESC").
		Find(&shared).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(owned)+len(shared))
	result := make([]models.Survey, 0, len(owned)+len(shared))
	for _, sv := range append(owned, shared...) {
		if seen[sv.ID] {
			continue
		}
		seen[sv.ID] = true
		result = append(result, sv)
	}
	return result, nil
}

// Publish is idempotent and irreversible: the flag only ever goes
// false -> true, and publishing twice is a no-op success.
func (s *SurveyService) Publish(actor models.User, id uuid.UUID) (*models.Survey, error) {
	survey, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwner(actor, *survey) {
		return nil, forbiddenf("only the survey owner can publish")
	}

	if !survey.IsPublished {
		if err := s.db.Model(survey).Update("is_published", true).Error; err != nil {
			return nil, err
		}
	}
	return s.getByID(id)
}

func (s *SurveyService) Share(actor models.User, surveyID, granteeID uuid.UUID) (*models.SurveyAccess, error) {
	survey, err := s.getByID(surveyID)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwner(actor, *survey) {
		return nil, forbiddenf("only the survey owner can share it")
	}
	if granteeID == survey.OwnerID {
		return nil, invalidf("cannot share a survey with its owner")
	}

	var grantee models.User
	if err := s.db.First(&grantee, "id = ?", granteeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidf("can only share with admin users")
		}
		return nil, err
	}
	if !policy.CanGrant(&grantee) {
		return nil, invalidf("can only share with admin users")
	}

	existing, err := s.hasGrant(surveyID, granteeID)
	if err != nil {
		return nil, err
	}
	if existing {
		return nil, conflictf("access already granted")
	}

	access := models.SurveyAccess{SurveyID: surveyID, AdminID: granteeID}
	if err := s.db.Create(&access).Error; err != nil {
		// The unique index on (survey_id, admin_id) closes the
		// check-then-insert race against a concurrent duplicate grant.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictf("access already granted")
		}
		return nil, err
	}
	return &access, nil
}

type QuestionInput struct {
	Text       string
	Type       models.QuestionType
	RankMax    *int
	OrderIndex int
}

func validateQuestionInput(input QuestionInput) error {
	switch input.Type {
	case models.QuestionTypeRank:
		if input.RankMax == nil || *input.RankMax < 2 {
			return invalidf("rank_max must be provided and >= 2 for rank questions")
		}
	case models.QuestionTypeTrueFalse, models.QuestionTypeText:
		if input.RankMax != nil {
			return invalidf("rank_max is only valid for rank questions")
		}
	default:
		return invalidf("unknown question type: %s", input.Type)
	}
	return nil
}

// AddQuestion appends a question to an owned survey. Once any response
// exists the question set is frozen; the check and the insert share one
// transaction so the freeze holds within the store's isolation. A racing
// Submit on another connection can still slip through; accepted limitation.
func (s *SurveyService) AddQuestion(actor models.User, surveyID uuid.UUID, input QuestionInput) (*models.Question, error) {
	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	survey, err := s.getByID(surveyID)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwner(actor, *survey) {
		return nil, forbiddenf("only the survey owner can add questions")
	}

	question := models.Question{
		SurveyID:   surveyID,
		Text:       input.Text,
		Type:       input.Type,
		RankMax:    input.RankMax,
		OrderIndex: input.OrderIndex,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		answered, err := s.hasResponses(tx, surveyID)
		if err != nil {
			return err
		}
		if answered {
			return conflictf("cannot modify a survey that already has responses")
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *SurveyService) ListQuestions(actor models.User, surveyID uuid.UUID) ([]models.Question, error) {
	survey, err := s.getByID(surveyID)
	if err != nil {
		return nil, err
	}

	hasGrant, err := s.hasGrant(surveyID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor, *survey, hasGrant) {
		return nil, forbiddenf("no access to this survey")
	}

	var questions []models.Question
	err = s.db.Where("survey_id = ?", surveyID).
		Order("order_index ASC").
		Find(&questions).Error
	return questions, err
}
