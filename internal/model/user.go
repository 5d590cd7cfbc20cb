package model

import "gorm.io/gorm"

// User 身份提供方的最小映射，讲师、学员与选课记录都引用它
type User struct {
	BaseModel
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username" validate:"required,max=150"`
	Email     string `gorm:"size:254" json:"email" validate:"omitempty,email,max=254"`
	FirstName string `gorm:"size:150" json:"firstName" validate:"max=150"`
	LastName  string `gorm:"size:150" json:"lastName" validate:"max=150"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return Validate(u)
}
