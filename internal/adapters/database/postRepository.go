package database

import (
	"context"
	"errors"

	"besafe/internal/core/post"

	"gorm.io/gorm"
)

// PostRepositoryDatabase implements the PostRepository port on gorm/Postgres.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID returns (nil, nil) when the post does not exist.
func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindAll(ctx context.Context, filtroSite string) ([]*post.Post, error) {
	var posts []*post.Post
	q := repo.db.WithContext(ctx).Order("created_at DESC")
	if filtroSite != "" {
		q = q.Where("site_name ILIKE ?", "%"+filtroSite+"%")
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) UpdateContent(ctx context.Context, id, siteName, description, category string) (*post.Post, error) {
	patch := post.Post{SiteName: siteName, Description: description, Category: category}
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", id).
		Select("site_name", "description", "category").
		Updates(patch).Error
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

// SaveVotes writes the vote fields guarded by a version compare-and-swap.
// RowsAffected tells whether this writer won.
func (repo *PostRepositoryDatabase) SaveVotes(ctx context.Context, p *post.Post) (bool, error) {
	next := post.Post{
		Likes:         p.Likes,
		Dislikes:      p.Dislikes,
		LikedUsers:    p.LikedUsers,
		DislikedUsers: p.DislikedUsers,
		Version:       p.Version + 1,
	}
	res := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Select("likes", "dislikes", "liked_users", "disliked_users", "version").
		Updates(next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{}).Error
}
