package repositories

import (
	"errors"
	"fmt"
	"time"

	"dorm-reservation-backend/db/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetFilteredUsers(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.User, int64, error)
	UpdateUserFields(id string, updates map[string]interface{}) (bool, error)
	RecordLoginFailure(user *models.User, maxAttempts int, lockDuration time.Duration) error
	RecordLoginSuccess(user *models.User, ip string) error
	WithTx(tx *gorm.DB) UserRepository
}

// Implementations
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user in database: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// usersQueryBuilder builds queries for user filtering
type usersQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newUsersQueryBuilder(db *gorm.DB, filters map[string]string) *usersQueryBuilder {
	return &usersQueryBuilder{
		query:   db.Model(&models.User{}),
		filters: filters,
	}
}

func (uqb *usersQueryBuilder) applyBasicUserFilters() *usersQueryBuilder {
	if role, ok := uqb.filters["role"]; ok && role != "" {
		uqb.query = uqb.query.Where("role = ?", role)
	}
	if disabled, ok := uqb.filters["disabled"]; ok && disabled != "" {
		uqb.query = uqb.query.Where("disabled = ?", disabled == "true")
	}
	return uqb
}

func (r *userRepository) GetFilteredUsers(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.User, int64, error) {
	uqb := newUsersQueryBuilder(r.db, filters).applyBasicUserFilters()
	countQuery := newUsersQueryBuilder(r.db, filters).applyBasicUserFilters()

	uqb.query = uqb.query.Order("created_at DESC")
	if paginationEnabled {
		uqb.query = uqb.query.Limit(limit).Offset(offset)
	}

	var users []models.User
	if err := uqb.query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := countQuery.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) UpdateUserFields(id string, updates map[string]interface{}) (bool, error) {
	if len(updates) == 0 {
		return false, nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RecordLoginFailure bumps the failure counter and locks the account once
// the attempt budget is spent.
func (r *userRepository) RecordLoginFailure(user *models.User, maxAttempts int, lockDuration time.Duration) error {
	user.FailedAttempts++
	updates := map[string]interface{}{
		"failed_attempts": user.FailedAttempts,
	}
	if user.FailedAttempts >= maxAttempts {
		lockedUntil := time.Now().UTC().Add(lockDuration)
		user.LockedUntil = &lockedUntil
		updates["locked_until"] = lockedUntil
	}
	return r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
}

// RecordLoginSuccess clears lockout state and stamps the login metadata.
func (r *userRepository) RecordLoginSuccess(user *models.User, ip string) error {
	now := time.Now().UTC()
	return r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"failed_attempts": 0,
		"locked_until":    nil,
		"last_login_at":   now,
		"last_login_ip":   ip,
	}).Error
}
