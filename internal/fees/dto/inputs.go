package dto

// GetFeeInput represents the input for reading one fee configuration
type GetFeeInput struct {
	Name string `path:"name" minLength:"1" maxLength:"64" description:"Operation name the fee is keyed by" example:"raid"`
}

// ListFeesInput represents the input for listing fee configurations
type ListFeesInput struct{}

// ConfigureFeeInput represents the administrative input for configuring a fee
type ConfigureFeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Name          string `path:"name" minLength:"1" maxLength:"64" description:"Operation name the fee is keyed by" example:"raid"`
	Body          ConfigureFeeRequest
}

// ConfigureFeeRequest is the fee configuration payload
type ConfigureFeeRequest struct {
	Currency      string `json:"currency" validate:"required" minLength:"1" description:"Currency the fee is denominated in" example:"SPICE"`
	Beneficiary   string `json:"beneficiary" description:"Recipient wallet when the fee is not burned"`
	BaseAmount    int64  `json:"base_amount" validate:"gte=0" minimum:"0" description:"Base fee amount"`
	MultiplierBps int64  `json:"multiplier_bps" validate:"gte=0" minimum:"0" description:"Scaling multiplier in basis points (10000 = 1x)" example:"10000"`
	Burn          bool   `json:"burn" description:"Burn the fee instead of forwarding it"`
	Enabled       bool   `json:"enabled" description:"Whether the fee is collected at all"`
}

// ToggleFeeInput represents the administrative input for enabling or disabling a fee
type ToggleFeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Name          string `path:"name" minLength:"1" maxLength:"64" description:"Operation name the fee is keyed by"`
	Body          struct {
		Enabled bool `json:"enabled"`
	}
}
