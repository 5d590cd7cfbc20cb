package model

import "gorm.io/gorm"

// Submission 一次考试提交，所选选项可跨越多个题目
type Submission struct {
	UUIDBase
	EnrollmentID uint        `gorm:"index;not null" json:"enrollmentId" validate:"required"`
	Enrollment   *Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE;" json:"-" validate:"-"`
	Choices      []Choice    `gorm:"many2many:submission_choices;" json:"choices" validate:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeSave(tx *gorm.DB) error {
	return Validate(s)
}

// ChoiceIDs 返回所选选项的 ID
func (s *Submission) ChoiceIDs() []uint {
	ids := make([]uint, 0, len(s.Choices))
	for _, c := range s.Choices {
		ids = append(ids, c.ID)
	}
	return ids
}
