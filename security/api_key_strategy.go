package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/wecode-ai/wegent-console/secctx"
)

// NewApiKeyStrategy authenticates server-to-server calls by the shared
// console api key. The resulting principal carries the sysadmin role.
func NewApiKeyStrategy(consoleApiKey string) auth.Strategy {
	return &apiKeyStrategyImpl{consoleApiKey: consoleApiKey}
}

type apiKeyStrategyImpl struct {
	consoleApiKey string
}

func (a apiKeyStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	apiKeyHeader := r.Header.Get("api-key")
	if apiKeyHeader == "" {
		return nil, fmt.Errorf("authentication failed: %v is empty", "api-key")
	}
	if a.consoleApiKey == "" {
		return nil, fmt.Errorf("authentication failed: console api key auth is not configured")
	}

	if subtle.ConstantTimeCompare([]byte(apiKeyHeader), []byte(a.consoleApiKey)) != 1 {
		return nil, fmt.Errorf("authentication failed: %v is not valid", "api-key")
	}

	userExtensions := auth.Extensions{}
	userExtensions.Add(secctx.SystemRoleExt, secctx.SysadmRole)

	return auth.NewDefaultUser("console-api-key", "console-api-key", []string{}, userExtensions), nil
}
