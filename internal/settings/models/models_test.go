package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeature_Valid(t *testing.T) {
	for _, feature := range AllFeatures {
		assert.True(t, feature.Valid(), "feature %s", feature)
	}

	assert.False(t, Feature("").Valid())
	assert.False(t, Feature("warp_drive").Valid())
	assert.False(t, Feature("Sieges").Valid())
}
