package service

import (
	"errors"

	"gorm.io/gorm"
)

// notFound 把 gorm 的未找到错误替换为领域错误，其余错误原样返回
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
