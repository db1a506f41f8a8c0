package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeRank      QuestionType = "rank"
	QuestionTypeTrueFalse QuestionType = "true_false"
	QuestionTypeText      QuestionType = "text"
)

// RankMax is set only for rank questions (required, >= 2); nil otherwise.
type Question struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"survey_id"`
	Text       string       `gorm:"type:text;not null" json:"text"`
	Type       QuestionType `gorm:"size:20;not null" json:"type"`
	RankMax    *int         `json:"rank_max"`
	OrderIndex int          `gorm:"not null;default:0" json:"order_index"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
