package types

import (
	"time"

	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/pkg/markdown"
	"github.com/topicboard/engine/pkg/pagination"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func PageMeta(p pagination.Page) *Meta {
	return &Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user"`
}

type PostView struct {
	PostID      uint      `json:"post_id"`
	AuthorID    uint      `json:"author_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPostView(p models.Post) PostView {
	return PostView{
		PostID:      p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Content:     p.Content,
		ContentHTML: markdown.Render(p.Content),
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPostViews(posts []models.Post) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostView(p))
	}
	return out
}

type CommentView struct {
	CommentID   uint      `json:"comment_id"`
	PostID      uint      `json:"post_id"`
	AuthorID    uint      `json:"author_id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCommentView(c models.Comment) CommentView {
	return CommentView{
		CommentID:   c.ID,
		PostID:      c.PostID,
		AuthorID:    c.AuthorID,
		Content:     c.Content,
		ContentHTML: markdown.Render(c.Content),
		IsDeleted:   c.IsDeleted,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCommentViews(comments []models.Comment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentView(c))
	}
	return out
}
