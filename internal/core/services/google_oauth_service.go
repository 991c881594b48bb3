package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// ErrGoogleDisabled is returned when no Google client ID is configured.
var ErrGoogleDisabled = errors.New("google sign-in is not configured")

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// GoogleOAuthService implements the OAuth code flow and ID token validation against Google.
type GoogleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
	validate     idTokenValidator
}

// NewGoogleOAuthService creates a GoogleOAuthService from the configured client.
func NewGoogleOAuthService(cfg *config.Config) *GoogleOAuthService {
	return &GoogleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

// IsEnabled reports whether a client ID is configured.
func (s *GoogleOAuthService) IsEnabled() bool {
	return s.clientID != ""
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *GoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *GoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCodeForIDToken exchanges an authorization code and extracts the ID token from the response.
func (s *GoogleOAuthService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrGoogleDisabled
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("google token response has no id_token")
	}
	return rawIDToken, nil
}

// ValidateGoogleIDToken validates an ID token issued for this client and extracts the identity claims.
func (s *GoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	if !s.IsEnabled() {
		return nil, ErrGoogleDisabled
	}
	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	info := &domain.GoogleUserInfo{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	return info, nil
}
