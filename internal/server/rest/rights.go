package rest

import (
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

type createRightRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

type rightResponse struct {
	Right *models.Right `json:"right"`
}

func (s *HTTPServer) createRight(w http.ResponseWriter, r *http.Request) {
	var req createRightRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	right, err := s.deps.Rights.Create(r.Context(), req.Name, req.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rightResponse{Right: right})
}

// listRights fails with 500 on a store error rather than leaving the request
// hanging.
func (s *HTTPServer) listRights(w http.ResponseWriter, r *http.Request) {
	rights, err := s.deps.Rights.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rights)
}

// listMyRights returns the rights of the authenticated caller.
func (s *HTTPServer) listMyRights(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	rights, err := s.deps.Rights.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rights)
}
