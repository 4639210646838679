package rest

import (
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.deps.Users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) createUser(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.deps.Users.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.deps.Users.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.deps.Users.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
