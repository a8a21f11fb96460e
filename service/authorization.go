package service

import (
	"context"

	"github.com/wecode-ai/wegent-console/secctx"
)

type AuthorizationService interface {
	HasReadPermission(ctx context.Context) (bool, error)
	HasManagementPermission(ctx context.Context) (bool, error)
}

func NewAuthorizationService() AuthorizationService {
	return &authorizationServiceImpl{}
}

type authorizationServiceImpl struct{}

func (a authorizationServiceImpl) HasReadPermission(ctx context.Context) (bool, error) {
	return true, nil // any authenticated user may browse the console
}

// HasManagementPermission guards mutations on shared catalog entities
// (shells, models). Bots, groups and tasks stay per-user.
func (a authorizationServiceImpl) HasManagementPermission(ctx context.Context) (bool, error) {
	return secctx.IsSysadm(ctx), nil
}
