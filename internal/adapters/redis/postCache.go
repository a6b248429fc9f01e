package redis

import (
	"context"
	"encoding/json"
	"time"

	postPort "besafe/internal/ports/post"

	"github.com/go-redis/redis/v8"
)

const (
	postListKey = "posts:list"
	postListTTL = 60 * time.Second
)

// PostCacheRedis caches the unfiltered post listing as a JSON blob.
type PostCacheRedis struct {
	Client *redis.Client
}

func NewPostCacheRedis(client *redis.Client) *PostCacheRedis {
	return &PostCacheRedis{Client: client}
}

// GetList returns (nil, nil) on a cache miss.
func (r *PostCacheRedis) GetList(ctx context.Context) ([]*postPort.PostDTO, error) {
	raw, err := r.Client.Get(ctx, postListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var posts []*postPort.PostDTO
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostCacheRedis) SetList(ctx context.Context, posts []*postPort.PostDTO) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, postListKey, raw, postListTTL).Err()
}

func (r *PostCacheRedis) Invalidate(ctx context.Context) error {
	return r.Client.Del(ctx, postListKey).Err()
}
