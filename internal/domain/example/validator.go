package example

import (
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

// Validation messages.
const (
	MsgNameRequired = "name must not be empty"
	MsgNameTooLong  = "name must be at most 255 characters"
	MsgLegalAge     = "must be of legal age (18 or older)"
	MsgAgePositive  = "age must be a positive number"
)

const (
	legalAge      = 18
	maxNameLength = 255
)

var rules = NewValidator()

// NewValidator returns the rule table for Example.
func NewValidator() *domain.RuleValidator[*Example] {
	return domain.NewRuleValidator(
		domain.FieldRules[*Example]{
			Field: FieldName,
			Value: func(e *Example) any { return e.name },
			Rules: []domain.Rule[*Example]{
				domain.NotBlank[*Example](MsgNameRequired),
				domain.MaxLen[*Example](maxNameLength, MsgNameTooLong),
			},
		},
		domain.FieldRules[*Example]{
			Field: FieldAge,
			Value: func(e *Example) any { return e.age },
			Rules: []domain.Rule[*Example]{
				domain.Min[*Example](legalAge, MsgLegalAge),
				domain.Positive[*Example](MsgAgePositive),
			},
		},
	)
}
