package post

import (
	"fmt"
	"time"

	"besafe/internal/core/apperr"

	"github.com/gofrs/uuid"
)

// Vote kinds accepted by ApplyVote.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

type Post struct {
	ID             uuid.UUID `gorm:"primary_key;type:char(36)"`
	SiteName       string    `gorm:"column:site_name;not null"`
	Description    string    `gorm:"type:text"`
	Category       string    `gorm:"not null"`
	AuthorUsername string    `gorm:"column:author_username;not null;index"`
	Likes          int       `gorm:"not null;default:0"`
	Dislikes       int       `gorm:"not null;default:0"`
	LikedUsers     []string  `gorm:"column:liked_users;serializer:json"`
	DislikedUsers  []string  `gorm:"column:disliked_users;serializer:json"`
	Version        int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// ApplyVote toggles username's vote on the post. Voting the same direction
// twice removes the vote; voting the opposite direction moves it. After the
// call the counters always equal the set sizes and username is never in both
// sets at once.
func (p *Post) ApplyVote(username, kind string) error {
	hasLiked := contains(p.LikedUsers, username)
	hasDisliked := contains(p.DislikedUsers, username)

	switch kind {
	case VoteLike:
		if hasLiked {
			p.LikedUsers = remove(p.LikedUsers, username)
		} else {
			p.LikedUsers = append(p.LikedUsers, username)
			if hasDisliked {
				p.DislikedUsers = remove(p.DislikedUsers, username)
			}
		}
	case VoteDislike:
		if hasDisliked {
			p.DislikedUsers = remove(p.DislikedUsers, username)
		} else {
			p.DislikedUsers = append(p.DislikedUsers, username)
			if hasLiked {
				p.LikedUsers = remove(p.LikedUsers, username)
			}
		}
	default:
		return fmt.Errorf("%w: Tipo inválido", apperr.ErrValidation)
	}

	p.Likes = len(p.LikedUsers)
	p.Dislikes = len(p.DislikedUsers)
	return nil
}

// HasVoted reports whether username currently holds any vote on the post.
func (p *Post) HasVoted(username string) bool {
	return contains(p.LikedUsers, username) || contains(p.DislikedUsers, username)
}

func contains(users []string, username string) bool {
	for _, u := range users {
		if u == username {
			return true
		}
	}
	return false
}

func remove(users []string, username string) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		if u != username {
			out = append(out, u)
		}
	}
	return out
}
