package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger, s.metrics.Middleware)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.Handle("/logout", s.requireAuth(s.handleLogout)).Methods(http.MethodPost)
	api.Handle("/users/profile", s.requireAuth(s.handleProfile)).Methods(http.MethodGet)
	api.Handle("/users/{id}/saved", s.requireAuth(s.handleSavedRecipes)).Methods(http.MethodGet)

	api.HandleFunc("/recipes", s.handleListRecipes).Methods(http.MethodGet)
	api.Handle("/recipes", s.requireAuth(s.handleCreateRecipe)).Methods(http.MethodPost)
	api.HandleFunc("/recipes/{id}", s.handleGetRecipe).Methods(http.MethodGet)
	api.Handle("/recipes/{id}", s.requireAuth(s.handleUpdateRecipe)).Methods(http.MethodPut)
	api.Handle("/recipes/{id}", s.requireAuth(s.handleDeleteRecipe)).Methods(http.MethodDelete)
	api.Handle("/recipes/{id}/save", s.requireAuth(s.handleSaveRecipe)).Methods(http.MethodPost)
	api.Handle("/recipes/{id}/save", s.requireAuth(s.handleUnsaveRecipe)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
