package model

import (
	"fmt"

	"gorm.io/gorm"
)

const DefaultLessonTitle = "title"

type Lesson struct {
	BaseModel
	CourseID  uint       `gorm:"index;not null" json:"courseId" validate:"required"`
	Course    *Course    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"-" validate:"-"`
	Title     string     `gorm:"size:200" json:"title" validate:"max=200"`
	Order     int        `gorm:"default:0" json:"order"`
	Content   string     `gorm:"type:text" json:"content"`
	Questions []Question `gorm:"foreignKey:LessonID" json:"questions,omitempty" validate:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func NewLesson(courseID uint, title string, order int, content string) *Lesson {
	if title == "" {
		title = DefaultLessonTitle
	}
	return &Lesson{CourseID: courseID, Title: title, Order: order, Content: content}
}

func (l *Lesson) BeforeSave(tx *gorm.DB) error {
	return Validate(l)
}

func (l *Lesson) String() string {
	courseName := ""
	if l.Course != nil {
		courseName = l.Course.Name
	}
	return fmt.Sprintf("Title: %s |\t Course: %s", l.Title, courseName)
}
