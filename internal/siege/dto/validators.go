package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateDeclareSiegeRequest validates the siege declaration payload
func ValidateDeclareSiegeRequest(input *DeclareSiegeInput) error {
	return validate.Struct(&input.Body)
}
