package handlers

import (
	"errors"
	"net/http"

	"github.com/cyberrps/arena/internal/auth"
	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/models"
)

type credentials struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// setAuthCookie mirrors the token into an HttpOnly cookie so browser clients
// need no header plumbing.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
}

// RegisterHandler creates an account and returns a session token with the
// fresh profile.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Nickname == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "nickname and password are required")
		return
	}

	user := models.User{
		Nickname: creds.Nickname,
		Password: creds.Password,
		Avatar:   creds.Avatar,
	}
	if err := database.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, database.ErrNicknameTaken) {
			writeError(w, http.StatusBadRequest, "nickname already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := auth.CreateToken(user.ID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	setAuthCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LoginHandler verifies credentials and returns a session token with the
// current profile.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := database.AuthenticateUser(r.Context(), creds.Nickname, creds.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid nickname or password")
		return
	}
	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the authenticated player's profile with their cosmetics
// inventory.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticateRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := database.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	inventory, err := database.ListInventory(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "inventory lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":      user,
		"inventory": inventory,
	})
}
