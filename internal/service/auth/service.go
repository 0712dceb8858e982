package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/kriyahr/hrms-backend-go/internal/domain/auth"
	"github.com/kriyahr/hrms-backend-go/internal/domain/user"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/jwt"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/oauth"
)

type Service struct {
	users  user.Repository
	jwt    jwt.Service
	google oauth.GoogleService
}

func NewService(users user.Repository, jwtSvc jwt.Service, google oauth.GoogleService) *Service {
	return &Service{users: users, jwt: jwtSvc, google: google}
}

func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same failure as a wrong password: no account enumeration.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *Service) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := s.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	u, err := s.users.GetByGoogleID(ctx, info.GoogleID)
	if errors.Is(err, user.ErrUserNotFound) {
		// Fall back to the email so an existing password account can link
		// its Google identity on first OAuth login.
		u, err = s.users.GetByEmail(ctx, info.Email)
		if err == nil && u.GoogleID == nil {
			u.GoogleID = &info.GoogleID
			if updateErr := s.users.Update(ctx, u); updateErr != nil {
				return auth.LoginResponse{}, updateErr
			}
		}
	}
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	return s.issueTokens(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwt.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	// Rotate: the presented token is single-use.
	s.jwt.RevokeToken(refreshToken)
	return s.issueTokens(u)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwt.RevokeToken(refreshToken)
	}
	return nil
}

func (s *Service) issueTokens(u user.User) (auth.LoginResponse, error) {
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	access, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refresh, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		TokenPair: auth.TokenPair{
			AccessToken:      access,
			AccessExpiresAt:  accessExp,
			RefreshToken:     refresh,
			RefreshExpiresAt: refreshExp,
		},
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Role:       string(u.Role),
	}, nil
}
