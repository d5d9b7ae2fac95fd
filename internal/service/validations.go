package service

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/limbo/ironlog/internal/catalog"
)

// Package-level validator with custom rules
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("catalog_exercise", func(fl validator.FieldLevel) bool {
			_, err := catalog.ByID(fl.Field().String())
			return err == nil
		})
	})
}
