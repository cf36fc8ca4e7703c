package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// UserRepository handles database operations for the user directory
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		return fmt.Errorf("failed to create user: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a user by its UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&user)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &user, nil
}

// ExistsByIDs reports which of the given user ids exist, in a single query
func (r *UserRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	exists := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return exists, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	var found []*models.User
	result := r.db.WithContext(ctx).Select("id").Where("id IN ?", strIDs).Find(&found)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", MapGormError(result.Error))
	}

	for _, user := range found {
		exists[user.ID] = true
	}
	return exists, nil
}
