package rest

import (
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
)

type authResponse struct {
	User    models.UserView `json:"user"`
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.deps.Accounts.Register(ctx, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loggerFrom(ctx, s.logger).Info(ctx, "Registered", "user_id", res.User.ID)
	writeJSON(w, http.StatusCreated, authResponse{User: res.User, Token: res.Token})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.deps.Accounts.Login(ctx, req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: res.User, Message: "Login successfully", Token: res.Token})
}
