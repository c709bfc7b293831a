package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AddStudentInput is the payload of the add operation. All three fields
// are required; the email must parse as an email address.
type AddStudentInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Course string `json:"course" validate:"required"`
}

func validateAddStudent(input AddStudentInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "is required"
		if fe.Tag() == "email" {
			reason = "must be a valid email address"
		}
		return &ValidationError{Field: fe.Field(), Reason: reason}
	}

	return err
}
