package services

import (
	"context"

	"google.golang.org/api/idtoken"
)

// SetIDTokenValidator replaces the Google ID token validator.
func (s *GoogleOAuthService) SetIDTokenValidator(fn func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)) {
	s.validate = fn
}
