package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrSlugTaken          = errors.New("slug already taken")
)

type GormRepo struct {
	DB *gorm.DB
}
