package barcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		barcode *Barcode
		valid   bool
	}{
		{"ean13", NewBarcode(id.New(), "4600000000001"), true},
		{"letters", NewBarcode(id.New(), "46A0"), false},
		{"empty", NewBarcode(id.New(), "  "), false},
		{"no item", NewBarcode(id.Nil(), "4600000000001"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.barcode.Validate(context.Background())
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.IsValidation(err))
		})
	}
}
