package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockroom/internal/errors"
)

type sampleRequest struct {
	ProductID  string   `json:"productId" validate:"required,uuid"`
	ProductIDs []string `json:"productIds" validate:"omitempty,max=2,dive,uuid"`
	Quantity   int      `json:"quantity"`
}

func TestDecodeJSONBody_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"productId":"0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01","quantity":3}`))

	var req sampleRequest
	require.NoError(t, DecodeJSONBody(r, &req))
	assert.Equal(t, 3, req.Quantity)
}

func TestDecodeJSONBody_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty body", ``, "body"},
		{"malformed", `{"productId":`, "body"},
		{"unknown field", `{"productId":"0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01","extra":1}`, "body"},
		{"wrong type", `{"productId":"0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01","quantity":1.5}`, "quantity"},
		{"missing id", `{"quantity":1}`, "productId"},
		{"not a uuid", `{"productId":"abc"}`, "productId"},
		{"trailing object", `{"productId":"0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01"}{}`, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var req sampleRequest

			err := DecodeJSONBody(r, &req)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			require.NotEmpty(t, ve.Details)
			assert.Equal(t, tt.wantField, ve.Details[0].Field)
		})
	}
}

func TestStruct_DiveReportsElement(t *testing.T) {
	err := Struct(sampleRequest{
		ProductID:  "0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01",
		ProductIDs: []string{"nope"},
	})
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "productIds[0]", ve.Details[0].Field)
	assert.Equal(t, "must be a valid UUID", ve.Details[0].Message)
}
