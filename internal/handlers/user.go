package handlers

import (
	"encoding/json"
	"net/http"

	"symptalyze/internal/auth"
	mw "symptalyze/internal/middleware"
)

type UserHandler struct {
	manager *auth.Manager
}

func NewUserHandler(manager *auth.Manager) *UserHandler {
	return &UserHandler{manager: manager}
}

type meResponse struct {
	User     UserDTO `json:"user"`
	Greeting string  `json:"greeting,omitempty"`
}

// GetMe returns the authenticated user's profile. When the request belongs
// to the active session, the greeting varies with how that session was
// established: a fresh signup gets "Welcome", a returning login gets
// "Welcome back".
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	resp := meResponse{}
	if current := h.manager.CurrentUser(); current != nil && current.Email == email {
		resp.User = ToUserDTO(*current)
		switch h.manager.NavigationSource() {
		case auth.SourceSignup:
			resp.Greeting = "Welcome, " + current.Name + "!"
		case auth.SourceLogin:
			resp.Greeting = "Welcome back, " + current.Name + "!"
		}
	} else {
		found := false
		for _, u := range h.manager.Users() {
			if u.Email == email {
				resp.User = ToUserDTO(u)
				found = true
				break
			}
		}
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
