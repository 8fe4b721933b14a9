package main

import (
	"context"
	"testing"

	"github.com/denmor86/ya-laundry/internal/helpers"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "0f8e5a52-4b8a-4c8e-9a43-7d1c2f000003"

func TestIssueToken(t *testing.T) {
	token, err := issueToken("secret", userID, "courier")
	require.NoError(t, err)

	// токен принимается сервисом с тем же секретом
	auth := services.NewIdentity("secret").GetTokenAuth()
	parsed, err := jwtauth.VerifyToken(auth, token)
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), parsed, nil)
	actor, err := helpers.GetActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Actor{ID: userID, Role: models.RoleCourier}, actor)

	_, err = jwtauth.VerifyToken(services.NewIdentity("other").GetTokenAuth(), token)
	assert.Error(t, err)
}

func TestIssueToken_Invalid(t *testing.T) {
	_, err := issueToken("secret", "abc", "courier")
	assert.Error(t, err)

	_, err = issueToken("secret", userID, "manager")
	assert.Error(t, err)
}
