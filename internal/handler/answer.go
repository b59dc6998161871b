package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/service"
)

type AnswerHandler struct {
	answers AnswerService
}

func NewAnswerHandler(answers AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// Routes mounts under /answers.
func (h *AnswerHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList lists answers either for a question or by a user. Exactly one
// of the two query parameters must be given.
//
// HTTP: GET /answers?question={id}
// HTTP: GET /answers?user={name}
func (h *AnswerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Has("question") && !q.Has("user"):
		id, err := service.ParseID("question", "question", q.Get("question"))
		if err != nil {
			writeError(w, err)
			return
		}
		answers, err := h.answers.ListByQuestion(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answers)

	case q.Has("user") && !q.Has("question"):
		answers, err := h.answers.ListByUser(r.Context(), q.Get("user"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answers)

	default:
		writeError(w, apperror.ValidationFailed("", "exactly one of question or user is required"))
	}
}

type createAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Body       string `json:"body"`
	UserName   string `json:"user_name"`
}

// HTTP: POST /answers {"question_id", "body", "user_name"} → 201
func (h *AnswerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := h.answers.Create(r.Context(), req.QuestionID, req.Body, req.UserName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HTTP: DELETE /answers/{id}
func (h *AnswerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID("id", "answer", chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.answers.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Answer deleted successfully", DeleteResult: res})
}
