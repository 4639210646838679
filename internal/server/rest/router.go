package rest

import (
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/server/swagger"
	"github.com/gorilla/mux"
)

// Handler builds the routing tree. Everything except registration, login,
// health, metrics and the API docs sits behind the auth gate.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware, s.deps.Metrics.Middleware)

	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	swagger.NewHandlers("userkeeper API").RegisterRoutes(r)

	p := r.NewRoute().Subrouter()
	p.Use(s.authMiddleware)

	p.HandleFunc("/userRight", s.createRight).Methods(http.MethodPost)
	p.HandleFunc("/getRights", s.listRights).Methods(http.MethodGet)
	p.HandleFunc("/myRights", s.listMyRights).Methods(http.MethodGet)

	p.HandleFunc("/allUsers", s.listUsers).Methods(http.MethodGet)
	p.HandleFunc("/aUser/{id}", s.getUser).Methods(http.MethodGet)
	p.HandleFunc("/createUser", s.createUser).Methods(http.MethodPost)
	p.HandleFunc("/updateUser/{id}", s.updateUser).Methods(http.MethodPut)
	p.HandleFunc("/deleteAuser/{id}", s.deleteUser).Methods(http.MethodDelete)

	p.HandleFunc("/uploadProfile", s.uploadProfile).Methods(http.MethodPost)
	p.HandleFunc("/allFiles", s.listFiles).Methods(http.MethodGet)
	p.HandleFunc("/files/{id}/url", s.fileURL).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s.corsMiddleware(r)
}

func (s *HTTPServer) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
