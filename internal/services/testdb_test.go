package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.SurveyAccess{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Email: fmt.Sprintf("user%d@example.com", userSeq),
		Name:  fmt.Sprintf("User %d", userSeq),
		Role:  role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// seedSurvey builds a survey through the services so the same code paths
// the handlers use are exercised.
func seedSurvey(t *testing.T, svc *SurveyService, owner models.User, publish bool, questions ...QuestionInput) *models.Survey {
	t.Helper()

	survey, err := svc.Create(owner, "test survey", nil)
	if err != nil {
		t.Fatalf("failed to create survey: %v", err)
	}
	for _, q := range questions {
		if _, err := svc.AddQuestion(owner, survey.ID, q); err != nil {
			t.Fatalf("failed to add question: %v", err)
		}
	}
	if publish {
		if _, err := svc.Publish(owner, survey.ID); err != nil {
			t.Fatalf("failed to publish survey: %v", err)
		}
	}

	survey, err = svc.getByID(survey.ID)
	if err != nil {
		t.Fatalf("failed to reload survey: %v", err)
	}
	return survey
}

func textQuestion(order int) QuestionInput {
	return QuestionInput{Text: "text q", Type: models.QuestionTypeText, OrderIndex: order}
}

func boolQuestion(order int) QuestionInput {
	return QuestionInput{Text: "bool q", Type: models.QuestionTypeTrueFalse, OrderIndex: order}
}

func rankQuestion(order, max int) QuestionInput {
	return QuestionInput{Text: "rank q", Type: models.QuestionTypeRank, RankMax: &max, OrderIndex: order}
}
