package service

import (
	"context"
	"fmt"

	"github.com/ilinovom/posts-browser/internal/model"
)

// PostsAPI describes the part of the JSONPlaceholder client used by the service.
type PostsAPI interface {
	PostsByUser(ctx context.Context, userID int) ([]byte, error)
}

// Result is a decoded posts response.
type Result struct {
	Posts []model.Post
	// Rejected counts records dropped by validation.
	Rejected int
}

type PostsService struct {
	api PostsAPI
}

func NewPostsService(api PostsAPI) *PostsService {
	return &PostsService{api: api}
}

// PostsByUser fetches and validates the posts of a user. Transport and
// status errors from the API are returned unchanged.
func (s *PostsService) PostsByUser(ctx context.Context, userID int) (Result, error) {
	body, err := s.api.PostsByUser(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	posts, rejected, err := model.DecodePosts(body)
	if err != nil {
		return Result{}, fmt.Errorf("decode posts response: %w", err)
	}
	return Result{Posts: posts, Rejected: rejected}, nil
}
