package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateFormAllianceRequest validates the alliance creation payload
func ValidateFormAllianceRequest(input *FormAllianceInput) error {
	return validate.Struct(&input.Body)
}

// ValidateProposeTreatyRequest validates the treaty proposal payload
func ValidateProposeTreatyRequest(input *ProposeTreatyInput) error {
	return validate.Struct(&input.Body)
}
