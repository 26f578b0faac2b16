package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-suite/student-service/internal/cache"
	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
)

// UserPostgreSQL reads the shared users table. The student service is
// not the owner of user data beyond the student rows it writes, so this
// repository is read-only and caches aggressively.
type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var cached models.User
	if err := r.cacheManager.User.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	_ = r.cacheManager.User.Set(ctx, cacheKey, &user, cache.UserCacheConfig.TTL)

	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	cacheKey := fmt.Sprintf("email:%s", email)

	var cached models.User
	if err := r.cacheManager.User.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	_ = r.cacheManager.User.Set(ctx, cacheKey, &user, cache.UserCacheConfig.TTL)

	return &user, nil
}

func (r *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return count > 0, nil
}
