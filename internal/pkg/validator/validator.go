package validator

import (
	"strings"

	"github.com/center-assignment/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(strings.ToLower(fl.Field().String())).Valid()
	})
}

// Validate runs the struct tag rules against s
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator exposes the shared validator for custom rules
func GetValidator() *validator.Validate {
	return validate
}

// FieldErrors flattens validation errors into field -> failed rule, for AppError details
func FieldErrors(err error) map[string]interface{} {
	out := make(map[string]interface{})
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}
