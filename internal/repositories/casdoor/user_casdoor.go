package casdoor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// UserSource is the part of the Casdoor client the directory needs
type UserSource interface {
	GetUserByUserId(userId string) (*casdoorsdk.User, error)
}

// UserCasdoor serves users from the local table and falls back to Casdoor for accounts
// that have not signed in yet. Accounts fetched from Casdoor are stored locally.
type UserCasdoor struct {
	source UserSource
	local  repositories.UserRepository
}

func NewUserCasdoor(config CasdoorConfig, local repositories.UserRepository) repositories.UserRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return NewUserDirectory(client, local)
}

// NewUserDirectory builds the directory over any user source
func NewUserDirectory(source UserSource, local repositories.UserRepository) *UserCasdoor {
	return &UserCasdoor{
		source: source,
		local:  local,
	}
}

// ===== CONVERSION METHODS =====

// ConvertCasdoorUser converts a Casdoor user to the internal model
func ConvertCasdoorUser(casdoorUser *casdoorsdk.User) *models.User {
	if casdoorUser == nil || casdoorUser.Id == "" {
		return nil
	}

	var createdAt, updatedAt time.Time
	if casdoorUser.CreatedTime != "" {
		createdAt, _ = time.Parse(time.RFC3339, casdoorUser.CreatedTime)
	}
	if casdoorUser.UpdatedTime != "" {
		updatedAt, _ = time.Parse(time.RFC3339, casdoorUser.UpdatedTime)
	}

	var avatarURL *string
	if casdoorUser.Avatar != "" {
		avatar := casdoorUser.Avatar
		avatarURL = &avatar
	}

	fullName := casdoorUser.DisplayName
	if fullName == "" {
		fullName = casdoorUser.Name
	}

	return &models.User{
		ID:        casdoorUser.Id,
		FullName:  fullName,
		Email:     casdoorUser.Email,
		Role:      convertCasdoorRoles(casdoorUser),
		AvatarURL: avatarURL,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func convertCasdoorRoles(casdoorUser *casdoorsdk.User) models.UserRole {
	var roles []models.UserRole
	for _, casdoorRole := range casdoorUser.Roles {
		if casdoorRole == nil {
			continue
		}
		roles = append(roles, MapCasdoorRole(casdoorRole.Name))
	}

	// Admin wins over any other role
	if slices.Contains(roles, models.RoleAdmin) || casdoorUser.IsAdmin {
		return models.RoleAdmin
	}
	if slices.Contains(roles, models.RoleLecturer) {
		return models.RoleLecturer
	}
	if len(roles) == 0 {
		return MapCasdoorRole(casdoorUser.Type)
	}
	return roles[0]
}

// MapCasdoorRole maps a Casdoor role name or user type to an internal role
func MapCasdoorRole(casdoorType string) models.UserRole {
	switch strings.ToLower(casdoorType) {
	case "admin", "administrator":
		return models.RoleAdmin
	case "lecturer", "teacher", "instructor", "educator":
		return models.RoleLecturer
	default:
		return models.RoleStudent
	}
}

// ===== REPOSITORY OPERATIONS =====

// GetByID retrieves a user locally, then from Casdoor
func (u *UserCasdoor) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := u.local.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	casdoorUser, err := u.source.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
	}

	user = ConvertCasdoorUser(casdoorUser)
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}

	if err := u.local.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *UserCasdoor) Upsert(ctx context.Context, user *models.User) error {
	return u.local.Upsert(ctx, user)
}

func (u *UserCasdoor) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return u.local.List(ctx, filters)
}
