package secctx

import (
	"context"
	"net/http"
	"strings"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/wecode-ai/wegent-console/view"
)

const SystemRoleExt = "system-role"
const SysadmRole = "admin"

func MakeUserContext(r *http.Request) context.Context {
	user := auth.User(r)
	userId := user.GetID()
	systemRole := user.GetExtensions().Get(SystemRoleExt)

	token := getAuthorizationToken(r)
	apiKey := getApiKey(r)

	return context.WithValue(r.Context(), "secCtx", securityContextImpl{
		userId:     userId,
		token:      token,
		apiKey:     apiKey,
		systemRole: systemRole,
		isSystem:   false,
	})
}

func MakeSysadminContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, "secCtx", securityContextImpl{userId: "system", isSystem: true})
}

type securityContextImpl struct {
	userId     string
	token      string
	apiKey     string
	systemRole string
	isSystem   bool
}

func getAuthorizationToken(r *http.Request) string {
	if token := getTokenFromAuthHeader(r); token != "" {
		return token
	}
	return getTokenFromCookie(r)
}

func getTokenFromAuthHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

func getTokenFromCookie(r *http.Request) string {
	accessTokenCookie, err := r.Cookie(view.AccessTokenCookieName)
	if err != nil {
		return ""
	}

	return accessTokenCookie.Value
}

func getApiKey(r *http.Request) string {
	return r.Header.Get("api-key")
}

func IsSystem(ctx context.Context) bool {
	val := ctx.Value("secCtx")
	if val == nil {
		return false
	}
	return val.(securityContextImpl).isSystem
}

func GetUserId(ctx context.Context) string {
	val := ctx.Value("secCtx")
	if val == nil {
		return ""
	}
	return val.(securityContextImpl).userId
}

func GetUserToken(ctx context.Context) string {
	val := ctx.Value("secCtx")
	if val == nil {
		return ""
	}
	return val.(securityContextImpl).token
}

func GetApiKey(ctx context.Context) string {
	val := ctx.Value("secCtx")
	if val == nil {
		return ""
	}
	return val.(securityContextImpl).apiKey
}

func IsSysadm(ctx context.Context) bool {
	val := ctx.Value("secCtx")
	if val == nil {
		return false
	}
	sctx := val.(securityContextImpl)
	return sctx.isSystem || sctx.systemRole == SysadmRole
}
