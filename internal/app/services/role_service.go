package services

import (
	"context"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
)

// RoleService exposes the reference roles
type RoleService struct {
	store repositories.Store
}

// NewRoleService creates a new RoleService
func NewRoleService(store repositories.Store) *RoleService {
	return &RoleService{store: store}
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.store.Roles().List(ctx)
}
