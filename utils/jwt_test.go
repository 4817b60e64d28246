package utils

import (
	"strings"
	"testing"
	"time"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	token, err := GenerateToken("user-1", "owner@example.com", models.RoleOwner, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, models.RoleOwner, role)
}

func TestExtractClaimsRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "owner@example.com", models.RoleOwner, -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestExtractClaimsRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("user-1", "owner@example.com", models.RoleOwner, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, _, err = ExtractClaimsFromToken(tampered)
	assert.Error(t, err)
}

func TestExtractClaimsRejectsUnknownRole(t *testing.T) {
	token, err := GenerateToken("user-1", "x@example.com", models.Role("SUPERUSER"), time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	h1 := HashToken("abc")
	h2 := HashToken("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("abd"))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q", r)
	}

	other, err := GenerateCode(8)
	require.NoError(t, err)
	// Two draws colliding is astronomically unlikely.
	assert.NotEqual(t, code, other)
}
