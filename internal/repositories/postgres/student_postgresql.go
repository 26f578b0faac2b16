package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campus-suite/student-service/internal/cache"
	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

// GetByID returns the full student record: shared user row joined with
// the student profile. Detail lookups are cached until the next write.
func (r *StudentPostgreSQL) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var cached models.Student
	if err := r.cacheManager.Student.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	student, err := r.fetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache failures never fail the read
	_ = r.cacheManager.Student.Set(ctx, cacheKey, student, cache.StudentCacheConfig.TTL)

	return student, nil
}

func (r *StudentPostgreSQL) fetchByID(ctx context.Context, id int64) (*models.Student, error) {
	var profile models.StudentProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.Student{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		IsActive:       user.IsActive,
		StudentProfile: profile,
	}, nil
}

// List returns student summaries matching the filters, ordered by identity.
func (r *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.StudentSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.is_active,
			student_profiles.class_name AS class, student_profiles.section,
			student_profiles.roll, student_profiles.system_access`).
		Joins("JOIN student_profiles ON student_profiles.user_id = users.id")

	if filters.Name != nil {
		query = query.Where("users.name ILIKE ?", "%"+*filters.Name+"%")
	}
	if filters.Class != nil {
		query = query.Where("student_profiles.class_name = ?", *filters.Class)
	}
	if filters.Section != nil {
		query = query.Where("student_profiles.section = ?", *filters.Section)
	}
	if filters.Roll != nil {
		query = query.Where("student_profiles.roll = ?", *filters.Roll)
	}

	query = query.Order("users.id ASC")
	if filters.Limit > 0 {
		query = query.Offset(filters.Offset).Limit(filters.Limit)
	}

	var students []*models.StudentSummary
	if err := query.Scan(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

// Insert creates the shared user row plus the student profile in one
// transaction and reports the assigned identity.
func (r *StudentPostgreSQL) Insert(ctx context.Context, user *models.User, profile *models.StudentProfile) (*repositories.WriteResult, error) {
	user.Role = models.RoleStudent

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, user.ID, user.Email)

	return &repositories.WriteResult{
		OK:      true,
		Message: "Student added successfully",
		UserID:  user.ID,
	}, nil
}

// priorEmail reads the stored email before a write so the cache entries
// keyed by it can be invalidated even when the write changes or removes it.
func (r *StudentPostgreSQL) priorEmail(ctx context.Context, id int64) string {
	var user models.User
	if err := r.db.WithContext(ctx).Select("email").First(&user, id).Error; err != nil {
		return ""
	}
	return user.Email
}

// Update rewrites the user row and the student profile for an existing identity.
func (r *StudentPostgreSQL) Update(ctx context.Context, user *models.User, profile *models.StudentProfile) (*repositories.WriteResult, error) {
	prior := r.priorEmail(ctx, user.ID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":  user.Name,
				"email": user.Email,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repositories.ErrNotFound
		}

		profile.UserID = user.ID
		profile.UpdatedAt = time.Now()
		return tx.Model(&models.StudentProfile{}).
			Where("user_id = ?", user.ID).
			Select("*").
			Omit("user_id", "created_at").
			Updates(profile).Error
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, user.ID, prior, user.Email)

	return &repositories.WriteResult{
		OK:      true,
		Message: "Student updated successfully",
		UserID:  user.ID,
	}, nil
}

// SetStatus flips the active flag and records the acting reviewer.
func (r *StudentPostgreSQL) SetStatus(ctx context.Context, id int64, status bool, reviewerID int64) (int64, error) {
	email := r.priorEmail(ctx, id)

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":               status,
			"status_last_reviewed_at": now,
			"status_last_reviewer_id": reviewerID,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to set student status: %w", res.Error)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, id, email)

	return res.RowsAffected, nil
}

// Delete removes the profile and the user row. Hard delete, irreversible.
func (r *StudentPostgreSQL) Delete(ctx context.Context, id int64) (int64, error) {
	email := r.priorEmail(ctx, id)

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.StudentProfile{}).Error; err != nil {
			return err
		}

		res := tx.Unscoped().Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, id, email)

	return affected, nil
}
