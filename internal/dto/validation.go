package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom validators on Gin's binding engine.
// Call once at startup.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("printmode", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "color", "grayscale":
			return true
		}
		return false
	})
}
