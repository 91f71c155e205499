package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/services"
)

// AuthController handles account registration and login requests
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

// Register handles POST /register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := c.services.Auth.Register(r.Context(), &form)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			respondError(w, http.StatusBadRequest, "Username exists")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"user_id": user.ID,
	})
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, _, err := c.services.Auth.Login(r.Context(), &form)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
