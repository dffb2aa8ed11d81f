package di

import (
	"testing"

	"ideaforge-backend/infrastructure/config"
	"ideaforge-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localConfig(environment, secret string) *config.Config {
	return &config.Config{
		Environment: environment,
		StorageMode: config.StorageModeLocal,
		JWTSecret:   secret,
		JWTIssuer:   "ideaforge",
		JWTAudience: "ideaforge-api",
	}
}

func TestProvideAuthGeneratesDevSecret(t *testing.T) {
	// Local development without JWT_SECRET still has to produce a working
	// verifier and a dev token issuer.
	bundle, err := ProvideAuth(localConfig("development", ""), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, bundle.Verifier)
	require.NotNil(t, bundle.DevTokens)

	token, err := bundle.DevTokens.GenerateToken("dev-user", "dev-user@localhost", []string{"user"})
	require.NoError(t, err)

	claims, err := bundle.Verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", claims.UserID)
}

func TestProvideAuthUsesConfiguredSecret(t *testing.T) {
	const secret = "local-test-secret"

	bundle, err := ProvideAuth(localConfig("development", secret), zap.NewNop())
	require.NoError(t, err)

	// Tokens minted outside the container with the same secret validate
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey: secret,
		Issuer:    "ideaforge",
		Audience:  []string{"ideaforge-api"},
	})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "user-1@example.com", nil)
	require.NoError(t, err)

	claims, err := bundle.Verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestProvideAuthProductionHasNoDevIssuer(t *testing.T) {
	bundle, err := ProvideAuth(localConfig("production", "prod-secret"), zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, bundle.Verifier)
	assert.Nil(t, bundle.DevTokens)
}
