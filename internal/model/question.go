package model

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	DefaultQuestionText = "Question"
	DefaultChoiceText   = "Choice *"
)

type Question struct {
	BaseModel
	LessonID     uint     `gorm:"index;not null" json:"lessonId" validate:"required"`
	Lesson       *Lesson  `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"-" validate:"-"`
	QuestionText string   `gorm:"size:256;not null" json:"questionText" validate:"required,max=256"`
	Grade        int      `gorm:"not null" json:"grade" validate:"gte=0"`
	Choices      []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty" validate:"-"`
}

func (Question) TableName() string {
	return "questions"
}

func NewQuestion(lessonID uint, text string, grade int) *Question {
	if text == "" {
		text = DefaultQuestionText
	}
	return &Question{LessonID: lessonID, QuestionText: text, Grade: grade}
}

func (q *Question) BeforeSave(tx *gorm.DB) error {
	return Validate(q)
}

func (q *Question) String() string {
	return fmt.Sprintf("Lesson: %d, Question: %s, Grade: %d", q.LessonID, q.QuestionText, q.Grade)
}

type Choice struct {
	BaseModel
	QuestionID uint      `gorm:"index;not null" json:"questionId" validate:"required"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;" json:"-" validate:"-"`
	ChoiceText string    `gorm:"size:256;not null" json:"choiceText" validate:"required,max=256"`
	IsCorrect  bool      `gorm:"not null" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}

func NewChoice(questionID uint, text string, isCorrect bool) *Choice {
	if text == "" {
		text = DefaultChoiceText
	}
	return &Choice{QuestionID: questionID, ChoiceText: text, IsCorrect: isCorrect}
}

func (c *Choice) BeforeSave(tx *gorm.DB) error {
	return Validate(c)
}

func (c *Choice) String() string {
	return fmt.Sprintf("choice_text: %s, Question: %d, is_correct: %t", c.ChoiceText, c.QuestionID, c.IsCorrect)
}
