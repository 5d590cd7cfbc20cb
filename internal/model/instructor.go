package model

import "gorm.io/gorm"

type Instructor struct {
	BaseModel
	UserID        uint  `gorm:"index;not null" json:"userId" validate:"required"`
	User          *User `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	FullTime      bool  `json:"fullTime"`
	TotalLearners int   `gorm:"not null" json:"totalLearners" validate:"gte=0"`
}

func (Instructor) TableName() string {
	return "instructors"
}

func NewInstructor(userID uint, totalLearners int) *Instructor {
	return &Instructor{UserID: userID, FullTime: true, TotalLearners: totalLearners}
}

func (i *Instructor) BeforeSave(tx *gorm.DB) error {
	return Validate(i)
}

func (i *Instructor) String() string {
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
