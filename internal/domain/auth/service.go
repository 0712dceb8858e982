package auth

import "context"

type Service interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// LoginWithGoogle completes the OAuth code exchange and signs the user in.
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
