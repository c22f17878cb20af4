package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateConfigureFeeRequest validates the fee configuration payload
func ValidateConfigureFeeRequest(req *ConfigureFeeRequest) error {
	return validate.Struct(req)
}
