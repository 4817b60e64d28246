package user

import (
	"testing"

	"gearbook/config"

	"github.com/stretchr/testify/assert"
)

func TestResetCodeLogFieldsOmitsCodeInProduction(t *testing.T) {
	orig := config.AppConfig.Env
	defer func() { config.AppConfig.Env = orig }()

	config.AppConfig.Env = "production"
	fields := resetCodeLogFields("a@b.test", "SECRET12")
	assert.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Key)

	config.AppConfig.Env = "development"
	fields = resetCodeLogFields("a@b.test", "SECRET12")
	assert.Len(t, fields, 2)
	assert.Equal(t, "code", fields[1].Key)
	assert.Equal(t, "SECRET12", fields[1].String)
}
