package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/qa-backend/internal/model"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Routes mounts under /users.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/{name}", h.HandleRegister)
	r.Get("/{name}", h.HandleGet)
	r.Delete("/{name}", h.HandleDelete)
}

// HandleList returns every user name as a JSON array.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	names, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

type registerResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleRegister creates the user named in the path.
//
// HTTP: POST /users/{name} → 201, or 409 if the name is taken
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Register(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{Message: "User created successfully", User: u})
}

// HTTP: GET /users/{name}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// HandleDelete removes the user and everything they own.
//
// HTTP: DELETE /users/{name}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.Delete(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "User deleted successfully", DeleteResult: res})
}
