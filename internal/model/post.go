package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPosts is returned when a payload is not a JSON array.
var ErrMalformedPosts = errors.New("posts payload is not a json array")

// Post is a single record returned by the posts API.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// rawPost mirrors Post with pointer fields so absent and mistyped values can
// be told apart from zero values.
type rawPost struct {
	ID     *int            `json:"id"`
	UserID *int            `json:"userId"`
	Title  json.RawMessage `json:"title"`
	Body   json.RawMessage `json:"body"`
}

// DecodePosts parses a JSON array of posts. Elements that are not objects,
// have no positive id, or carry a non-string title/body are dropped and
// counted in rejected. The returned slice is never nil.
func DecodePosts(data []byte) (posts []Post, rejected int, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedPosts, err)
	}
	if items == nil {
		// literal null
		return nil, 0, ErrMalformedPosts
	}
	posts = make([]Post, 0, len(items))
	for _, item := range items {
		p, ok := decodePost(item)
		if !ok {
			rejected++
			continue
		}
		posts = append(posts, p)
	}
	return posts, rejected, nil
}

func decodePost(item json.RawMessage) (Post, bool) {
	var raw rawPost
	if err := json.Unmarshal(item, &raw); err != nil {
		return Post{}, false
	}
	if raw.ID == nil || *raw.ID <= 0 {
		return Post{}, false
	}
	p := Post{ID: *raw.ID}
	if raw.UserID != nil {
		p.UserID = *raw.UserID
	}
	var ok bool
	if p.Title, ok = optionalString(raw.Title); !ok {
		return Post{}, false
	}
	if p.Body, ok = optionalString(raw.Body); !ok {
		return Post{}, false
	}
	return p, true
}

// optionalString accepts an absent field, null or a JSON string.
func optionalString(v json.RawMessage) (string, bool) {
	if len(v) == 0 || string(v) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// EncodePosts serialises posts for storage. An empty or nil slice encodes
// as "[]".
func EncodePosts(posts []Post) (string, error) {
	if posts == nil {
		posts = []Post{}
	}
	b, err := json.Marshal(posts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
