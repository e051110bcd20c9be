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

type TopicsHandler struct {
	topics   repository.TopicRepository
	ratings  repository.RatingRepository
	validate interface{ Struct(any) error }
}

func NewTopicsHandler(topics repository.TopicRepository, ratings repository.RatingRepository, v interface{ Struct(any) error }) *TopicsHandler {
	return &TopicsHandler{topics: topics, ratings: ratings, validate: v}
}

func (h *TopicsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.TopicCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	topic := models.Topic{Name: req.Name, Description: req.Description}
	if err := h.topics.Create(r.Context(), &topic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: topic})
}

func (h *TopicsHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	topics, page, err := h.topics.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    topics,
		Meta:    types.PageMeta(page),
	})
}

func (h *TopicsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var topic models.Topic
	if err := h.topics.GetByID(r.Context(), id, &topic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: topic})
}

// Stats aggregates ratings on demand; nothing is precomputed.
func (h *TopicsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.topics.Stats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: stats})
}

// UpsertRating records or replaces the caller's rating for the topic.
func (h *TopicsHandler) UpsertRating(w http.ResponseWriter, r *http.Request) {
	topicID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.RatingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TopicID != topicID {
		writeError(w, appErr.New(appErr.CodeInvalid, "topic id in body does not match path"))
		return
	}

	var topic models.Topic
	if err := h.topics.GetByID(r.Context(), topicID, &topic); err != nil {
		writeError(w, err)
		return
	}

	user := middleware.CurrentUser(r.Context())
	rating := models.Rating{
		UserID:  user.ID,
		TopicID: topicID,
		Score:   req.Score,
		Comment: req.Comment,
	}
	if err := h.ratings.Upsert(r.Context(), &rating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: rating})
}

func (h *TopicsHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	topicID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var topic models.Topic
	if err := h.topics.GetByID(r.Context(), topicID, &topic); err != nil {
		writeError(w, err)
		return
	}
	ratings, page, err := h.ratings.ListByTopic(r.Context(), topicID, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    ratings,
		Meta:    types.PageMeta(page),
	})
}
