package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/qa-backend/internal/service"
)

type QuestionHandler struct {
	questions QuestionService
}

func NewQuestionHandler(questions QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// Routes mounts under /questions.
func (h *QuestionHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList returns questions newest first with their answer counts.
//
// HTTP: GET /questions[?user=name]
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	qs, err := h.questions.List(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

type createQuestionRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	UserName string `json:"user_name"`
}

// HTTP: POST /questions {"title", "body", "user_name"} → 201
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	q, err := h.questions.Create(r.Context(), req.Title, req.Body, req.UserName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// HandleGet returns one question with its answer count and direct comments.
//
// HTTP: GET /questions/{id}
func (h *QuestionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID("id", "question", chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := h.questions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandleDelete removes the question, its answers and every comment on them.
//
// HTTP: DELETE /questions/{id}
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID("id", "question", chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.questions.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Question deleted successfully", DeleteResult: res})
}
