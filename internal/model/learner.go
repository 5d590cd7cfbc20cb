package model

import "gorm.io/gorm"

type Occupation string

const (
	OccupationStudent       Occupation = "student"
	OccupationDeveloper     Occupation = "developer"
	OccupationDataScientist Occupation = "data_scientist"
	OccupationDatabaseAdmin Occupation = "dba"
)

var occupationLabels = map[Occupation]string{
	OccupationStudent:       "Student",
	OccupationDeveloper:     "Developer",
	OccupationDataScientist: "Data Scientist",
	OccupationDatabaseAdmin: "Database Admin",
}

func (o Occupation) Valid() bool {
	_, ok := occupationLabels[o]
	return ok
}

func (o Occupation) Label() string {
	return occupationLabels[o]
}

type Learner struct {
	BaseModel
	UserID     uint       `gorm:"index;not null" json:"userId" validate:"required"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Occupation Occupation `gorm:"size:20;not null" json:"occupation" validate:"required,max=20,oneof=student developer data_scientist dba"`
	SocialLink string     `gorm:"size:200" json:"socialLink" validate:"omitempty,url,max=200"`
}

func (Learner) TableName() string {
	return "learners"
}

func NewLearner(userID uint) *Learner {
	return &Learner{UserID: userID, Occupation: OccupationStudent}
}

func (l *Learner) BeforeSave(tx *gorm.DB) error {
	return Validate(l)
}

func (l *Learner) String() string {
	name := ""
	if l.User != nil {
		name = l.User.Username
	}
	return name + "," + string(l.Occupation)
}
