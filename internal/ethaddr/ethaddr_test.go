package ethaddr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors from EIP-55.
var checksummed = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksum(t *testing.T) {
	for _, want := range checksummed {
		got, err := Checksum(strings.ToLower(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		got, err = Checksum(strings.TrimPrefix(strings.ToUpper(want), "0X"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestValidate(t *testing.T) {
	for _, addr := range checksummed {
		assert.NoError(t, Validate(addr), addr)
		assert.NoError(t, Validate(strings.ToLower(addr)), addr)
	}

	tests := []struct {
		name string
		addr string
		want error
	}{
		{"too short", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", ErrInvalidLength},
		{"empty", "", ErrInvalidLength},
		{"non hex", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAzz", ErrInvalidHex},
		{"bad checksum", "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ErrInvalidChecksum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.addr), tt.want)
		})
	}
}
