package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is the draft-validation policy that UI boundaries (CLI, HTTP)
// invoke before Add/Update. The service itself does not re-validate: its
// contract is to persist what it is given.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the project rules registered.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// ValidateDraft checks a draft against the business rules: client name
// non-blank, total payment positive, advance non-negative and not exceeding
// the total. Violations are reported wrapped in ErrInvalidInput.
func (v *Validator) ValidateDraft(p Project) error {
	err := v.validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating project: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "ClientName":
		return "client name is required"
	case fe.Field() == "TotalPayment":
		return "total payment must be greater than zero"
	case fe.Field() == "AdvancePayment" && fe.Tag() == "ltefield":
		return "advance cannot exceed total payment"
	case fe.Field() == "AdvancePayment":
		return "advance payment cannot be negative"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
