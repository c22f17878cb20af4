package dto

// ListFlagsInput represents the input for listing feature flags
type ListFlagsInput struct{}

// ToggleFeatureInput represents the input for toggling a feature
type ToggleFeatureInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Feature       string `path:"feature" description:"Feature flag name" example:"sieges"`
	Body          struct {
		Enabled bool   `json:"enabled" description:"True to enable the feature"`
		Reason  string `json:"reason,omitempty" maxLength:"256" description:"Why the feature is being toggled"`
	}
}
