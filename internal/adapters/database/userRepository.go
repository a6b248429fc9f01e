package database

import (
	"context"
	"errors"
	"fmt"

	"besafe/internal/core/apperr"
	"besafe/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements the UserRepository port on gorm/Postgres.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

// Create translates the unique-violation (Postgres 23505) into ErrConflict so
// services never have to know driver error codes.
func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q", apperr.ErrConflict, u.Username)
		}
		return nil, err
	}
	return u, nil
}

// FindByUsername returns (nil, nil) when the user does not exist.
func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindAll(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateImage returns (nil, nil) when the user does not exist.
func (repo *UserRepositoryDatabase) UpdateImage(ctx context.Context, username, headerImage, bytesImage string) (*user.User, error) {
	res := repo.db.WithContext(ctx).
		Model(&user.User{}).
		Where("username = ?", username).
		Select("header_image", "bytes_image").
		Updates(user.User{HeaderImage: headerImage, BytesImage: bytesImage})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return repo.FindByUsername(ctx, username)
}

func (repo *UserRepositoryDatabase) Delete(ctx context.Context, username string) error {
	return repo.db.WithContext(ctx).Where("username = ?", username).Delete(&user.User{}).Error
}
