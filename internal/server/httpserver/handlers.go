package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/culinaryshare/internal/server/metrics"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/gorilla/mux"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Culinary Share API is running"))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRegistered)
	s.log(r.Context()).Info(r.Context(), "user registered", "user_id", session.User.ID)
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventLoggedIn)
	writeJSON(w, http.StatusOK, session)
}

// handleLogout only acknowledges; tokens stay valid until they expire.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	profile, err := s.users.GetProfile(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSavedRecipes(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if mux.Vars(r)["id"] != user.ID {
		writeMessage(w, http.StatusForbidden, "Not authorized to view these saved recipes")
		return
	}

	list, err := s.recipes.Saved(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := s.recipes.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.recipes.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var in models.RecipeInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	recipe, err := s.recipes.Create(r.Context(), user.ID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRecipeCreated)
	s.log(r.Context()).Info(r.Context(), "recipe created", "recipe_id", recipe.ID, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, recipe)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var upd models.RecipeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	recipe, err := s.recipes.Update(r.Context(), user.ID, mux.Vars(r)["id"], upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRecipeUpdated)
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := s.recipes.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRecipeDeleted)
	s.log(r.Context()).Info(r.Context(), "recipe deleted", "recipe_id", id, "user_id", user.ID)
	writeMessage(w, http.StatusOK, "Recipe removed successfully")
}

func (s *Server) handleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.recipes.Save(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRecipeSaved)
	writeMessage(w, http.StatusOK, "Recipe saved successfully")
}

func (s *Server) handleUnsaveRecipe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.recipes.Unsave(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordEvent(metrics.EventRecipeUnsaved)
	writeMessage(w, http.StatusOK, "Recipe removed from saved collection")
}
