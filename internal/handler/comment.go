package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/service"
)

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Routes mounts under /comments.
func (h *CommentHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList lists comments on a parent or by a user.
//
// HTTP: GET /comments?parent={id}   (question wins if the id is both)
// HTTP: GET /comments?user={name}
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Has("parent") && !q.Has("user"):
		id, err := service.ParseID("parent", "parent", q.Get("parent"))
		if err != nil {
			writeError(w, err)
			return
		}
		comments, err := h.comments.ListByParent(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)

	case q.Has("user") && !q.Has("parent"):
		comments, err := h.comments.ListByUser(r.Context(), q.Get("user"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)

	default:
		writeError(w, apperror.ValidationFailed("", "exactly one of parent or user is required"))
	}
}

type createCommentRequest struct {
	ParentID   int64  `json:"parent_id"`
	ParentType string `json:"parent_type"` // optional; inferred from parent_id when empty
	Body       string `json:"body"`
	UserName   string `json:"user_name"`
}

// HTTP: POST /comments {"parent_id", "parent_type", "body", "user_name"} → 201
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.comments.Create(r.Context(), service.NewComment{
		ParentID:   req.ParentID,
		ParentType: req.ParentType,
		Body:       req.Body,
		UserName:   req.UserName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HTTP: DELETE /comments/{id}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID("id", "comment", chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.comments.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Comment deleted successfully", DeleteResult: res})
}
