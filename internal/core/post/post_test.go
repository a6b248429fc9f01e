package post

import (
	"errors"
	"testing"

	"besafe/internal/core/apperr"
)

func newPost() *Post {
	return &Post{
		SiteName:       "example.com",
		Description:    "scam",
		Category:       "phishing",
		AuthorUsername: "alice",
		LikedUsers:     []string{},
		DislikedUsers:  []string{},
	}
}

func TestApplyVote_ToggleSequence(t *testing.T) {
	p := newPost()

	if err := p.ApplyVote("bob", VoteLike); err != nil {
		t.Fatalf("like: %v", err)
	}
	if p.Likes != 1 || len(p.LikedUsers) != 1 || p.LikedUsers[0] != "bob" {
		t.Fatalf("after like: likes=%d likedUsers=%v", p.Likes, p.LikedUsers)
	}

	// same direction again toggles the vote off
	if err := p.ApplyVote("bob", VoteLike); err != nil {
		t.Fatalf("second like: %v", err)
	}
	if p.Likes != 0 || len(p.LikedUsers) != 0 {
		t.Fatalf("after toggle off: likes=%d likedUsers=%v", p.Likes, p.LikedUsers)
	}

	if err := p.ApplyVote("bob", VoteDislike); err != nil {
		t.Fatalf("dislike: %v", err)
	}
	if p.Dislikes != 1 || len(p.DislikedUsers) != 1 || p.DislikedUsers[0] != "bob" {
		t.Fatalf("after dislike: dislikes=%d dislikedUsers=%v", p.Dislikes, p.DislikedUsers)
	}
	if p.Likes != 0 {
		t.Fatalf("likes should stay 0, got %d", p.Likes)
	}
}

func TestApplyVote_SwitchDirection(t *testing.T) {
	p := newPost()

	if err := p.ApplyVote("bob", VoteLike); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := p.ApplyVote("bob", VoteDislike); err != nil {
		t.Fatalf("dislike: %v", err)
	}

	if p.Likes != 0 || len(p.LikedUsers) != 0 {
		t.Errorf("like should be gone: likes=%d likedUsers=%v", p.Likes, p.LikedUsers)
	}
	if p.Dislikes != 1 || len(p.DislikedUsers) != 1 {
		t.Errorf("dislike should be active: dislikes=%d dislikedUsers=%v", p.Dislikes, p.DislikedUsers)
	}
}

func TestApplyVote_MutualExclusivity(t *testing.T) {
	p := newPost()
	sequence := []string{
		VoteLike, VoteDislike, VoteDislike, VoteLike,
		VoteLike, VoteDislike, VoteLike, VoteLike,
	}

	for i, kind := range sequence {
		if err := p.ApplyVote("bob", kind); err != nil {
			t.Fatalf("step %d (%s): %v", i, kind, err)
		}

		inLiked := false
		for _, u := range p.LikedUsers {
			if u == "bob" {
				inLiked = true
			}
		}
		inDisliked := false
		for _, u := range p.DislikedUsers {
			if u == "bob" {
				inDisliked = true
			}
		}
		if inLiked && inDisliked {
			t.Fatalf("step %d (%s): bob in both vote sets", i, kind)
		}
		if p.Likes != len(p.LikedUsers) || p.Dislikes != len(p.DislikedUsers) {
			t.Fatalf("step %d (%s): counters diverged from sets: likes=%d/%d dislikes=%d/%d",
				i, kind, p.Likes, len(p.LikedUsers), p.Dislikes, len(p.DislikedUsers))
		}
	}
}

func TestApplyVote_MultipleVoters(t *testing.T) {
	p := newPost()

	for _, u := range []string{"bob", "carol", "dave"} {
		if err := p.ApplyVote(u, VoteLike); err != nil {
			t.Fatalf("like by %s: %v", u, err)
		}
	}
	if err := p.ApplyVote("carol", VoteDislike); err != nil {
		t.Fatalf("carol switches: %v", err)
	}

	if p.Likes != 2 || p.Dislikes != 1 {
		t.Fatalf("likes=%d dislikes=%d, want 2/1", p.Likes, p.Dislikes)
	}
	if p.HasVoted("bob") != true || p.HasVoted("eve") != false {
		t.Fatal("HasVoted wrong")
	}
}

func TestApplyVote_InvalidKind(t *testing.T) {
	p := newPost()
	err := p.ApplyVote("bob", "upvote")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if p.Likes != 0 || p.Dislikes != 0 || len(p.LikedUsers) != 0 || len(p.DislikedUsers) != 0 {
		t.Fatal("invalid kind must not change vote state")
	}
}
