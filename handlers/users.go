package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/microblog-app/microblog-backend/auth"
	"github.com/microblog-app/microblog-backend/log"
	"github.com/microblog-app/microblog-backend/models"
	"github.com/microblog-app/microblog-backend/store"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Username == "" || req.Password == "" {
			respondMessage(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		_, err := users.GetByUsername(r.Context(), req.Username)
		if err == nil {
			respondMessage(w, http.StatusBadRequest, "Username already exists")
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error.Printf("Register lookup failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Error registering user")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondMessage(w, http.StatusInternalServerError, "Error registering user")
			return
		}

		_, err = users.Create(r.Context(), &models.User{
			Username:     req.Username,
			PasswordHash: string(hashed),
		})
		if err != nil {
			// The unique index closes the lookup/insert race.
			if errors.Is(err, store.ErrDuplicateUsername) {
				respondMessage(w, http.StatusBadRequest, "Username already exists")
				return
			}
			log.Error.Printf("Register insert failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Error registering user")
			return
		}

		respondMessage(w, http.StatusCreated, "User registered successfully")
	}
}

func Login(users store.UserStore, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Unknown user and wrong password produce the same response so the
		// endpoint never confirms which usernames exist.
		user, err := users.GetByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusBadRequest, "Invalid username or password")
				return
			}
			log.Error.Printf("Login lookup failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Error logging in")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid username or password")
			return
		}

		token, err := auth.IssueToken(user.ID.Hex(), user.Username, secret)
		if err != nil {
			log.Error.Printf("Login token issue failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Error logging in")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"token":    token,
			"username": user.Username,
		})
	}
}

func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running!"))
	}
}
