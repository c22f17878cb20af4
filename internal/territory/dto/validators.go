package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRegisterTerritoryRequest validates the territory seeding payload
func ValidateRegisterTerritoryRequest(input *RegisterTerritoryInput) error {
	return validate.Struct(&input.Body)
}
