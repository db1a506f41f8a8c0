package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is immutable once created; it and its answers are written in a
// single transaction at submission time.
type Response struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"survey_id"`
	AnswererID  uuid.UUID `gorm:"type:uuid;not null;index" json:"answerer_id"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	Answers     []Answer  `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Answer carries exactly one populated value among text/bool/rank, matching
// the parent question's type. Arity is enforced at intake, not by the schema.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResponseID uuid.UUID `gorm:"type:uuid;not null;index" json:"response_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	TextValue  *string   `gorm:"type:text" json:"text_value"`
	BoolValue  *bool     `json:"bool_value"`
	RankValue  *int      `json:"rank_value"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
