package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator with the custom rules registered.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("quarterhour", quarterHour)
	return &echoValidator{v: v}
}

// quarterHour accepts minute counts in 15 minute steps.
func quarterHour(fl validator.FieldLevel) bool {
	return fl.Field().Int()%15 == 0
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "hexcolor":
		return field + " must be a hex color such as #61dafb"
	case "quarterhour":
		return field + " must be a multiple of 15 minutes"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
