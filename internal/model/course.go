package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultCourseName = "online course"

type Course struct {
	BaseModel
	Name            string        `gorm:"size:30;not null" json:"name" validate:"required,max=30"`
	Image           string        `gorm:"size:255" json:"image" validate:"max=255"`
	Description     string        `gorm:"size:1000" json:"description" validate:"max=1000"`
	PubDate         *time.Time    `json:"pubDate,omitempty"`
	TotalEnrollment int           `gorm:"not null;default:0" json:"totalEnrollment" validate:"gte=0"`
	Instructors     []*Instructor `gorm:"many2many:course_instructors;" json:"instructors,omitempty" validate:"-"`
	Lessons         []Lesson      `gorm:"foreignKey:CourseID" json:"lessons,omitempty" validate:"-"`
	Enrollments     []Enrollment  `gorm:"foreignKey:CourseID" json:"-" validate:"-"`

	// 非持久化字段，查询时按当前用户填充
	IsEnrolled bool `gorm:"-" json:"isEnrolled"`
}

func (Course) TableName() string {
	return "courses"
}

func NewCourse(name, description string) *Course {
	if name == "" {
		name = DefaultCourseName
	}
	return &Course{Name: name, Description: description}
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	return Validate(c)
}

func (c *Course) String() string {
	return "Name: " + c.Name + ",\nDescription: " + c.Description
}
