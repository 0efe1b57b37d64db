package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID     string  `validate:"required"`
	Name   string  `validate:"required,min=1"`
	Rating float64 `validate:"gte=0,lte=5"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(samplePayload{ID: "p-1", Name: "iPhone 14 Pro", Rating: 4.5})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(samplePayload{Rating: 3})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "ID")
	assert.Contains(t, fields, "Name")
	assert.Equal(t, "is required", fields["ID"])
}

func TestValidate_RangeViolation(t *testing.T) {
	err := Validate(samplePayload{ID: "p-1", Name: "x", Rating: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rating")
}
