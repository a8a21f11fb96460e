package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/go-guardian/v2/auth/strategies/union"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/fifo"
	_ "github.com/shaj13/libcache/lru"
)

var strategy union.Union

func SetupGoGuardian(jwtPublicKey string, consoleApiKey string) error {
	if jwtPublicKey == "" {
		return fmt.Errorf("jwt public key is not set")
	}

	rsaPublicKey, err := parseRsaPublicKey([]byte(jwtPublicKey))
	if err != nil {
		return fmt.Errorf("failed to parse jwt public key: %s", err.Error())
	}

	keeper := jwt.StaticSecret{
		ID:        "secret-id",
		Secret:    rsaPublicKey,
		Algorithm: jwt.RS256,
	}

	cache := libcache.LRU.New(1000)
	cache.SetTTL(time.Minute * 60)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})

	jwtStrategy := jwt.New(cache, keeper)
	apiKeyStrategy := NewApiKeyStrategy(consoleApiKey)
	cookieTokenStrategy := NewCookieTokenStrategy(rsaPublicKey)
	strategy = union.New(jwtStrategy, apiKeyStrategy, cookieTokenStrategy)

	return nil
}

func parseRsaPublicKey(keyData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(keyData)
	if block != nil {
		keyData = block.Bytes
	}

	if key, err := x509.ParsePKCS1PublicKey(keyData); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKIXPublicKey(keyData)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key is not an RSA public key")
	}
	return rsaKey, nil
}
