package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/topicboard/engine/internal/api/middleware"
	"github.com/topicboard/engine/internal/api/types"
	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/internal/repository"
	appErr "github.com/topicboard/engine/pkg/errors"
)

type PostsHandler struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	validate interface{ Struct(any) error }
}

func NewPostsHandler(posts repository.PostRepository, comments repository.CommentRepository, v interface{ Struct(any) error }) *PostsHandler {
	return &PostsHandler{posts: posts, comments: comments, validate: v}
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.PostCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.CurrentUser(r.Context())
	post := models.Post{
		AuthorID: user.ID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := h.posts.Create(r.Context(), &post); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: types.NewPostView(post)})
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	posts, page, err := h.posts.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    types.NewPostViews(posts),
		Meta:    types.PageMeta(page),
	})
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var post models.Post
	if err := h.posts.GetVisible(r.Context(), id, &post); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: types.NewPostView(post)})
}

// Delete soft-deletes a post. Only the author or an admin may delete, and
// ownership is checked before visibility so a second delete of the same
// post still succeeds.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var post models.Post
	if err := h.posts.GetAny(r.Context(), id, &post); err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if post.AuthorID != user.ID && !user.IsAdmin() {
		writeError(w, appErr.New(appErr.CodeForbidden, "not allowed to delete this post"))
		return
	}
	if err := h.posts.SoftDelete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	// Commenting on a hidden post is the same as commenting on a missing one.
	var post models.Post
	if err := h.posts.GetVisible(r.Context(), postID, &post); err != nil {
		writeError(w, err)
		return
	}

	user := middleware.CurrentUser(r.Context())
	comment := models.Comment{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  req.Content,
	}
	if err := h.comments.Create(r.Context(), &comment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: types.NewCommentView(comment)})
}

func (h *PostsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var post models.Post
	if err := h.posts.GetVisible(r.Context(), postID, &post); err != nil {
		writeError(w, err)
		return
	}
	comments, page, err := h.comments.ListByPost(r.Context(), postID, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    types.NewCommentViews(comments),
		Meta:    types.PageMeta(page),
	})
}

func (h *PostsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r, "comment_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var comment models.Comment
	if err := h.comments.GetAny(r.Context(), commentID, &comment); err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if comment.AuthorID != user.ID && !user.IsAdmin() {
		writeError(w, appErr.New(appErr.CodeForbidden, "not allowed to delete this comment"))
		return
	}
	if err := h.comments.SoftDelete(r.Context(), commentID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
