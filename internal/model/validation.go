package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation 包装所有字段校验失败
var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 按 validate 标签校验实体，关联字段统一标记为 validate:"-"
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s", ErrValidation, describe(fe))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Namespace() + " is required"
	case "max":
		return e.Namespace() + " must be at most " + e.Param()
	case "gte":
		return e.Namespace() + " must be at least " + e.Param()
	case "lte":
		return e.Namespace() + " must be at most " + e.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %v)", e.Namespace(), e.Param(), e.Value())
	case "url":
		return e.Namespace() + " must be a valid URL"
	case "email":
		return e.Namespace() + " must be a valid email address"
	default:
		return e.Namespace() + " validation failed: " + e.Tag()
	}
}
