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

type postRequest struct {
	Content string `json:"content"`
}

func GetPosts(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := posts.List(r.Context())
		if err != nil {
			log.Error.Printf("GetPosts failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to fetch posts")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func GetPostsByUser(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]

		list, err := posts.ListByAuthor(r.Context(), username)
		if err != nil {
			log.Error.Printf("GetPostsByUser failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to fetch user posts")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func CreatePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.FromContext(r.Context())
		if !ok {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Content == "" {
			respondMessage(w, http.StatusBadRequest, "Content is required")
			return
		}

		// The author is always the verified caller, never the body.
		post, err := posts.Create(r.Context(), &models.Post{
			AuthorUsername: identity.Username,
			Content:        req.Content,
		})
		if err != nil {
			log.Error.Printf("CreatePost failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to create post")
			return
		}

		respondJSON(w, http.StatusCreated, post)
	}
}

func UpdatePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.FromContext(r.Context())
		id := mux.Vars(r)["id"]

		post, err := posts.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("UpdatePost fetch failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update post")
			return
		}

		if post.AuthorUsername != identity.Username {
			respondMessage(w, http.StatusForbidden, "Not authorized to update this post")
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Content == "" {
			respondMessage(w, http.StatusBadRequest, "Content is required")
			return
		}

		updated, err := posts.UpdateContent(r.Context(), id, req.Content)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("UpdatePost failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to update post")
			return
		}

		respondJSON(w, http.StatusOK, updated)
	}
}

func DeletePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.FromContext(r.Context())
		id := mux.Vars(r)["id"]

		post, err := posts.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("DeletePost fetch failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to delete post")
			return
		}

		if post.AuthorUsername != identity.Username {
			respondMessage(w, http.StatusForbidden, "Not authorized to delete this post")
			return
		}

		if err := posts.Delete(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("DeletePost failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to delete post")
			return
		}

		respondMessage(w, http.StatusOK, "Post deleted successfully")
	}
}

func LikePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		likes, err := posts.IncrementLikes(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("LikePost failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to like post")
			return
		}

		respondJSON(w, http.StatusOK, map[string]int{"likes": likes})
	}
}

func UnlikePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		likes, err := posts.DecrementLikes(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondMessage(w, http.StatusNotFound, "Post not found")
				return
			}
			log.Error.Printf("UnlikePost failed: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Failed to unlike post")
			return
		}

		respondJSON(w, http.StatusOK, map[string]int{"likes": likes})
	}
}
