package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"userhub/internal/auth"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, totalPages, err := s.Users.FindAll(r.Context(), params)
	if err != nil {
		log.Printf("list users: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	items := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		items = append(items, userJSON(&users[i]))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_pages": totalPages,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := s.Users.FindByID(r.Context(), id)
	if err != nil {
		log.Printf("get user %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, userJSON(user))
}

type updateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validateEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.Users.Update(r.Context(), id, req.Email, req.Password)
	if err != nil {
		writeWorkflowError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, userJSON(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.Users.Delete(r.Context(), id)
	if err != nil {
		log.Printf("delete user %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if deleted == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	log.Printf("user %s deleted user %s from %s", userIDFromContext(r.Context()), id, s.clientIP(r))
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func listParamsFromRequest(r *http.Request) (auth.ListParams, error) {
	q := r.URL.Query()

	params := auth.ListParams{
		Page:     parseIntParam(q.Get("page")),
		PageSize: parseIntParam(q.Get("page_size")),
		SortBy:   q.Get("sort_by"),
	}

	if email := q.Get("email"); email != "" {
		params.Email = &email
	}

	var err error
	if params.CreatedAtGte, err = parseTimeParam(r, "created_at[gte]"); err != nil {
		return auth.ListParams{}, err
	}
	if params.CreatedAtLte, err = parseTimeParam(r, "created_at[lte]"); err != nil {
		return auth.ListParams{}, err
	}
	if params.UpdatedAtGte, err = parseTimeParam(r, "updated_at[gte]"); err != nil {
		return auth.ListParams{}, err
	}
	if params.UpdatedAtLte, err = parseTimeParam(r, "updated_at[lte]"); err != nil {
		return auth.ListParams{}, err
	}

	return params, nil
}

func parseIntParam(raw string) int64 {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
