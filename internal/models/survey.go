package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Survey struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       User       `gorm:"foreignKey:OwnerID" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	Questions   []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Responses   []Response `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SurveyAccess grants a non-owner admin the same read/manage visibility as
// the owner. The composite unique index makes the no-duplicate-grant
// invariant hold under concurrent share requests.
type SurveyAccess struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_survey_admin" json:"survey_id"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_survey_admin" json:"admin_id"`
	GrantedAt time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

func (a *SurveyAccess) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
