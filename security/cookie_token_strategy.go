package security

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/wecode-ai/wegent-console/view"
	"gopkg.in/square/go-jose.v2/jwt"
)

// NewCookieTokenStrategy authenticates browser sessions by the access token
// cookie the console sets at login. The token is a regular signed jwt, so it
// is verified with the same RSA public key as the Authorization header.
func NewCookieTokenStrategy(rsaPublicKey *rsa.PublicKey) auth.Strategy {
	return &cookieTokenStrategyImpl{rsaPublicKey: rsaPublicKey}
}

type cookieTokenStrategyImpl struct {
	rsaPublicKey *rsa.PublicKey
}

func (a cookieTokenStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	cookie, err := r.Cookie(view.AccessTokenCookieName)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: access token cookie not found")
	}

	jt, err := jwt.ParseSigned(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("token parse error: %w", err)
	}

	userInfo := auth.NewDefaultUser("", "", []string{}, auth.Extensions{})
	if err := jt.Claims(a.rsaPublicKey, userInfo); err != nil {
		return nil, fmt.Errorf("authentication failed, token from cookie is incorrect: %w", err)
	}
	return userInfo, nil
}
