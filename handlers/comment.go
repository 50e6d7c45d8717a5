package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/microblog-app/microblog-backend/log"
	"github.com/microblog-app/microblog-backend/middleware"
	"github.com/microblog-app/microblog-backend/models"
	"github.com/microblog-app/microblog-backend/store"
)

type commentRequest struct {
	Text string `json:"text"`
}

func CreateComment(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.FromContext(r.Context())
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		postID := mux.Vars(r)["id"]

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Text == "" {
			respondMessage(w, http.StatusBadRequest, "Comment text is required")
			return
		}

		comment, err := posts.AddComment(r.Context(), postID, &models.Comment{
			AuthorUsername: identity.Username,
			Text:           req.Text,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("CreateComment failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to add comment")
			return
		}

		respondJSON(w, http.StatusCreated, comment)
	}
}

// findComment scans the post's comment list. Comment lists stay small, so a
// linear pass beats maintaining a separate index.
func findComment(post *models.Post, commentID string) *models.Comment {
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			return &post.Comments[i]
		}
	}
	return nil
}

func UpdateComment(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.FromContext(r.Context())
		vars := mux.Vars(r)
		postID := vars["id"]
		commentID := vars["commentId"]

		post, err := posts.GetByID(r.Context(), postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("UpdateComment fetch failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update comment")
			return
		}

		comment := findComment(post, commentID)
		if comment == nil {
			respondMessage(w, http.StatusNotFound, "Comment not found")
			return
		}
		if comment.AuthorUsername != identity.Username {
			respondMessage(w, http.StatusForbidden, "Not authorized to update this comment")
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Text == "" {
			respondMessage(w, http.StatusBadRequest, "Comment text is required")
			return
		}

		updated, err := posts.UpdateComment(r.Context(), postID, commentID, req.Text)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Comment not found")
				return
			}
			log.Error.Printf("UpdateComment failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update comment")
			return
		}

		respondJSON(w, http.StatusOK, updated)
	}
}

func DeleteComment(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.FromContext(r.Context())
		vars := mux.Vars(r)
		postID := vars["id"]
		commentID := vars["commentId"]

		post, err := posts.GetByID(r.Context(), postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("DeleteComment fetch failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to delete comment")
			return
		}

		comment := findComment(post, commentID)
		if comment == nil {
			respondMessage(w, http.StatusNotFound, "Comment not found")
			return
		}
		if comment.AuthorUsername != identity.Username {
			respondMessage(w, http.StatusForbidden, "Not authorized to delete this comment")
			return
		}

		if err := posts.RemoveComment(r.Context(), postID, commentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Comment not found")
				return
			}
			log.Error.Printf("DeleteComment failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to delete comment")
			return
		}

		respondMessage(w, http.StatusOK, "Comment deleted successfully")
	}
}
