package types

import "time"

// CommentInput is a comment as supplied by a client
type CommentInput struct {
	User    string     `json:"user"`
	Comment string     `json:"comment"`
	Date    *time.Time `json:"date,omitempty"`
}

// CreateRecipeRequest carries the fields accepted on creation. Every field
// is optional; unknown fields are ignored and the id is always assigned
// by the server.
type CreateRecipeRequest struct {
	Title        string         `json:"title"`
	Ingredients  []string       `json:"ingredients"`
	Instructions string         `json:"instructions"`
	ImageURL     string         `json:"imageUrl"`
	Category     string         `json:"category"`
	PrepTime     float64        `json:"prepTime"`
	Servings     float64        `json:"servings"`
	Author       string         `json:"author"`
	DateAdded    *time.Time     `json:"dateAdded"`
	Ratings      float64        `json:"ratings"`
	Comments     []CommentInput `json:"comments"`
	Favorites    int64          `json:"favorites"`
}

// UpdateRecipeRequest is a partial update: nil fields are left untouched.
// Comments and favorites are absent on purpose; they only change through
// the comment and favorite operations.
type UpdateRecipeRequest struct {
	Title        *string    `json:"title"`
	Ingredients  *[]string  `json:"ingredients"`
	Instructions *string    `json:"instructions"`
	ImageURL     *string    `json:"imageUrl"`
	Category     *string    `json:"category"`
	PrepTime     *float64   `json:"prepTime"`
	Servings     *float64   `json:"servings"`
	Author       *string    `json:"author"`
	DateAdded    *time.Time `json:"dateAdded"`
	Ratings      *float64   `json:"ratings"`
}

// AddCommentRequest is the body of a comment append; the date is assigned
// by the server
type AddCommentRequest struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
}
