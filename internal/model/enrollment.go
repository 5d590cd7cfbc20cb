package model

import (
	"time"

	"gorm.io/gorm"
)

type CourseMode string

const (
	ModeAudit CourseMode = "audit"
	ModeHonor CourseMode = "honor"
	ModeBeta  CourseMode = "BETA"
)

const DefaultRating = 5.0

func (m CourseMode) Valid() bool {
	switch m {
	case ModeAudit, ModeHonor, ModeBeta:
		return true
	}
	return false
}

func (m CourseMode) Label() string {
	switch m {
	case ModeAudit:
		return "Audit"
	case ModeHonor:
		return "Honor"
	case ModeBeta:
		return "BETA"
	}
	return ""
}

// Enrollment 用户与课程之间的关联，携带选课模式与评分
type Enrollment struct {
	BaseModel
	UserID       uint         `gorm:"index;not null" json:"userId" validate:"required"`
	User         *User        `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	CourseID     uint         `gorm:"index;not null" json:"courseId" validate:"required"`
	Course       *Course      `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"course,omitempty" validate:"-"`
	DateEnrolled time.Time    `json:"dateEnrolled"`
	Mode         CourseMode   `gorm:"size:5;not null" json:"mode" validate:"required,max=5,oneof=audit honor BETA"`
	Rating       float64      `json:"rating" validate:"gte=0,lte=5"`
	Submissions  []Submission `gorm:"foreignKey:EnrollmentID" json:"-" validate:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func NewEnrollment(userID, courseID uint, mode CourseMode) *Enrollment {
	if mode == "" {
		mode = ModeAudit
	}
	return &Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		DateEnrolled: time.Now(),
		Mode:         mode,
		Rating:       DefaultRating,
	}
}

func (e *Enrollment) BeforeSave(tx *gorm.DB) error {
	return Validate(e)
}
