package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
)

// fullAnswers builds one valid answer per question of the survey.
func fullAnswers(survey *models.Survey, text string, b bool, rank int) []AnswerInput {
	answers := make([]AnswerInput, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		a := AnswerInput{QuestionID: q.ID}
		switch q.Type {
		case models.QuestionTypeText:
			v := text
			a.TextValue = &v
		case models.QuestionTypeTrueFalse:
			v := b
			a.BoolValue = &v
		case models.QuestionTypeRank:
			v := rank
			a.RankValue = &v
		}
		answers = append(answers, a)
	}
	return answers
}

func newResponseFixture(t *testing.T) (*SurveyService, *ResponseService, models.User, models.User) {
	t.Helper()
	db := newTestDB(t)
	surveys := NewSurveyService(db)
	responses := NewResponseService(db, surveys)
	owner := createUser(t, db, models.RoleAdmin)
	answerer := createUser(t, db, models.RoleAnswerer)
	return surveys, responses, owner, answerer
}

func TestSubmitRequiresAnswerer(t *testing.T) {
	surveys, responses, owner, _ := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))

	if _, err := responses.Submit(owner, survey.ID, fullAnswers(survey, "x", false, 1)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin submitting: expected ErrForbidden, got %v", err)
	}
}

func TestSubmitUnpublishedForbidden(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, false, textQuestion(0))

	if _, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "x", false, 1)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unpublished survey: expected ErrForbidden, got %v", err)
	}
}

func TestSubmitSurveyNotFound(t *testing.T) {
	_, responses, _, answerer := newResponseFixture(t)

	if _, err := responses.Submit(answerer, uuid.New(), nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitCoverage(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0), boolQuestion(1))

	// One answer short.
	short := fullAnswers(survey, "x", true, 1)[:1]
	_, err := responses.Submit(answerer, survey.ID, short)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing answer: expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing answers") {
		t.Fatalf("error should name the missing question: %v", err)
	}
	if !strings.Contains(err.Error(), survey.Questions[1].ID.String()) {
		t.Fatalf("error should carry the missing question ID: %v", err)
	}

	// One answer for a question that is not part of the survey.
	extraText := "y"
	extra := append(fullAnswers(survey, "x", true, 1), AnswerInput{QuestionID: uuid.New(), TextValue: &extraText})
	_, err = responses.Submit(answerer, survey.ID, extra)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("extraneous answer: expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown questions") {
		t.Fatalf("error should name the extraneous question: %v", err)
	}

	// Nothing may have been written by the failed attempts.
	got, err := responses.ListForSurvey(owner, survey.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("failed submissions must write no rows, found %d responses", len(got))
	}
}

func TestSubmitValueTypeMismatch(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))

	wrong := true
	_, err := responses.Submit(answerer, survey.ID, []AnswerInput{
		{QuestionID: survey.Questions[0].ID, BoolValue: &wrong},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bool value on text question: expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitRankOutOfRange(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, rankQuestion(0, 5))

	if _, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "", false, 7)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rank 7 of 5: expected ErrInvalidInput, got %v", err)
	}
	if _, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "", false, 0)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rank 0: expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitPersistsResponseWithAnswers(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0), boolQuestion(1), rankQuestion(2, 5))

	response, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "fine", true, 4))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if response.AnswererID != answerer.ID {
		t.Fatal("response must record the answerer")
	}
	if len(response.Answers) != 3 {
		t.Fatalf("expected 3 materialized answers, got %d", len(response.Answers))
	}
	if response.SubmittedAt.IsZero() {
		t.Fatal("submitted_at must be stamped")
	}
}

func TestAddQuestionConflictAfterResponse(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))

	if _, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "x", false, 1)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := surveys.AddQuestion(owner, survey.ID, boolQuestion(1)); !errors.Is(err, ErrConflict) {
		t.Fatalf("question set must freeze once a response exists, got %v", err)
	}
}

func TestListResponsesAccessAndOrder(t *testing.T) {
	db := newTestDB(t)
	surveys := NewSurveyService(db)
	responses := NewResponseService(db, surveys)
	owner := createUser(t, db, models.RoleAdmin)
	shared := createUser(t, db, models.RoleAdmin)
	stranger := createUser(t, db, models.RoleAdmin)
	answerer := createUser(t, db, models.RoleAnswerer)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))

	first, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "first", false, 1))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	second, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "second", false, 1))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	// Force distinct timestamps; rapid submissions can share one.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db.Model(&models.Response{}).Where("id = ?", first.ID).Update("submitted_at", base)
	db.Model(&models.Response{}).Where("id = ?", second.ID).Update("submitted_at", base.Add(time.Minute))

	listed, err := responses.ListForSurvey(owner, survey.ID)
	if err != nil {
		t.Fatalf("owner list failed: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != second.ID {
		t.Fatalf("responses must come most recent first")
	}

	if _, err := surveys.Share(owner, survey.ID, shared.ID); err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if _, err := responses.ListForSurvey(shared, survey.ID); err != nil {
		t.Fatalf("shared admin list failed: %v", err)
	}
	if _, err := responses.ListForSurvey(stranger, survey.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger admin: expected ErrForbidden, got %v", err)
	}
	if _, err := responses.ListForSurvey(answerer, survey.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("answerer: expected ErrForbidden, got %v", err)
	}
}

func TestListOwnResponses(t *testing.T) {
	db := newTestDB(t)
	surveys := NewSurveyService(db)
	responses := NewResponseService(db, surveys)
	owner := createUser(t, db, models.RoleAdmin)
	alice := createUser(t, db, models.RoleAnswerer)
	bob := createUser(t, db, models.RoleAnswerer)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))

	if _, err := responses.Submit(alice, survey.ID, fullAnswers(survey, "a", false, 1)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := responses.Submit(alice, survey.ID, fullAnswers(survey, "a2", false, 1)); err != nil {
		t.Fatalf("repeat submit must be allowed: %v", err)
	}
	if _, err := responses.Submit(bob, survey.ID, fullAnswers(survey, "b", false, 1)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	own, err := responses.ListOwn(alice, survey.ID)
	if err != nil {
		t.Fatalf("list own failed: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("alice should see her 2 responses, got %d", len(own))
	}
	for _, r := range own {
		if r.AnswererID != alice.ID {
			t.Fatal("list own leaked another answerer's response")
		}
	}
}

func TestGetResponse(t *testing.T) {
	surveys, responses, owner, answerer := newResponseFixture(t)
	survey := seedSurvey(t, surveys, owner, true, textQuestion(0))
	other := seedSurvey(t, surveys, owner, true, textQuestion(0))

	submitted, err := responses.Submit(answerer, survey.ID, fullAnswers(survey, "x", false, 1))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	got, err := responses.Get(owner, survey.ID, submitted.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("expected answers preloaded, got %d", len(got.Answers))
	}

	// The response belongs to a different survey than the one in the path.
	if _, err := responses.Get(owner, other.ID, submitted.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-survey lookup: expected ErrNotFound, got %v", err)
	}
	if _, err := responses.Get(answerer, survey.ID, submitted.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("answerer reading responses: expected ErrForbidden, got %v", err)
	}
}

func TestRoundTripAggregate(t *testing.T) {
	db := newTestDB(t)
	surveys := NewSurveyService(db)
	responses := NewResponseService(db, surveys)
	owner := createUser(t, db, models.RoleAdmin)
	alice := createUser(t, db, models.RoleAnswerer)
	bob := createUser(t, db, models.RoleAnswerer)

	survey := seedSurvey(t, surveys, owner, true,
		boolQuestion(0), rankQuestion(1, 5), textQuestion(2))

	if _, err := responses.Submit(alice, survey.ID, fullAnswers(survey, "loved it", true, 3)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := responses.Submit(bob, survey.ID, fullAnswers(survey, "meh", false, 5)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result, err := responses.Aggregate(owner, survey.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if result.TotalResponses != 2 {
		t.Fatalf("expected 2 total responses, got %d", result.TotalResponses)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected 3 question aggregates, got %d", len(result.Questions))
	}

	tf := result.Questions[0]
	if tf.QuestionType != models.QuestionTypeTrueFalse {
		t.Fatalf("aggregates must follow question order, got %s first", tf.QuestionType)
	}
	if *tf.TrueCount != 1 || *tf.FalseCount != 1 || *tf.TruePercentage != 50 {
		t.Fatalf("unexpected true/false tally: %d/%d %v", *tf.TrueCount, *tf.FalseCount, *tf.TruePercentage)
	}

	rank := result.Questions[1]
	if rank.AverageRank == nil || *rank.AverageRank != 4 {
		t.Fatalf("expected average_rank 4, got %v", rank.AverageRank)
	}
	if rank.RankDistribution[3] != 1 || rank.RankDistribution[5] != 1 {
		t.Fatalf("unexpected rank distribution: %v", rank.RankDistribution)
	}

	text := result.Questions[2]
	if len(text.TextResponses) != 2 {
		t.Fatalf("expected 2 text responses, got %d", len(text.TextResponses))
	}

	if _, err := responses.Aggregate(alice, survey.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("answerer aggregate: expected ErrForbidden, got %v", err)
	}
}
