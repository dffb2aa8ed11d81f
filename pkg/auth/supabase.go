package auth

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// SupabaseVerifier validates Supabase access tokens against the hosted auth
// service. Used in hosted storage mode, where users sign in through Supabase.
type SupabaseVerifier struct {
	client *supabase.Client
}

// NewSupabaseVerifier creates a verifier from the project URL and the service
// role key.
func NewSupabaseVerifier(projectURL, serviceRoleKey string) (*SupabaseVerifier, error) {
	if projectURL == "" || serviceRoleKey == "" {
		return nil, fmt.Errorf("supabase URL and service role key are required")
	}

	client, err := supabase.NewClient(projectURL, serviceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseVerifier{client: client}, nil
}

// VerifyToken validates the access token and returns the user's claims.
// The GetUser call carries the token on the underlying HTTP request.
func (v *SupabaseVerifier) VerifyToken(token string) (*Claims, error) {
	user, err := v.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Roles:  []string{"authenticated"},
	}, nil
}
