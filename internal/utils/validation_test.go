package utils

import (
	"testing"

	"gotours/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRole(t *testing.T) {
	type subject struct {
		Role models.UserRole `validate:"omitempty,role"`
	}

	for _, role := range []models.UserRole{models.RoleUser, models.RoleGuide, models.RoleLeadGuide, models.RoleAdmin} {
		assert.NoError(t, ValidateStruct(subject{Role: role}), "role %q", role)
	}

	assert.Error(t, ValidateStruct(subject{Role: "superadmin"}))
	assert.NoError(t, ValidateStruct(subject{}), "role is optional")
}
