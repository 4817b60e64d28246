package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPasswordComplexity(t *testing.T) {
	valid := []string{"abcdefg1", "Tr4ctor-hire", "8characters"}
	for _, p := range valid {
		assert.NoError(t, VerifyPasswordComplexity(p), "password %q", p)
	}

	invalid := []string{
		"",
		"short1",     // too short
		"abcdefgh",   // no digit
		"12345678",   // no letter
		"!@#$%^&*()", // neither
	}
	for _, p := range invalid {
		assert.ErrorIs(t, VerifyPasswordComplexity(p), ErrWeakPassword, "password %q", p)
	}
}
