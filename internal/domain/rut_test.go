package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRUT(t *testing.T) {
	require.Equal(t, "123456785", NormalizeRUT("12.345.678-5"))
	require.Equal(t, "20930578K", NormalizeRUT(" 20930578-k "))
	require.Equal(t, "111111111", NormalizeRUT("11111111-1"))
}

func TestValidRUT(t *testing.T) {
	valid := []string{
		"12.345.678-5",
		"12345678-5",
		"123456785",
		"11111111-1",
		"20930578-K",
		"20930578-k",
		"20930572-0",
	}
	for _, rut := range valid {
		require.True(t, ValidRUT(rut), "expected %q to be valid", rut)
	}

	invalid := []string{
		"",
		"5",
		"12345678-4", // wrong check digit
		"12345678-K",
		"1111111a-1",
		"20930578-9",
	}
	for _, rut := range invalid {
		require.False(t, ValidRUT(rut), "expected %q to be invalid", rut)
	}
}

func TestValidRUT_CheckDigitMutations(t *testing.T) {
	// Any single mutation of a valid RUT's check digit must be rejected.
	const body = "12345678"
	digits := []byte("0123456789K")
	for _, d := range digits {
		rut := body + string(d)
		if d == '5' {
			require.True(t, ValidRUT(rut))
			continue
		}
		require.False(t, ValidRUT(rut), "mutated check digit %c accepted", d)
	}
}
