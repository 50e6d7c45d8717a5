package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/microblog-app/microblog-backend/handlers"
	"github.com/microblog-app/microblog-backend/middleware"
	"github.com/microblog-app/microblog-backend/store"
)

// CreatePostRoutes mounts the post and comment endpoints. Reads are public;
// every mutation goes through the auth gate.
func CreatePostRoutes(posts store.PostStore, users store.UserStore, secret []byte, router *mux.Router) *mux.Router {
	gate := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(users, secret, h)
	}

	router.HandleFunc("/posts", handlers.GetPosts(posts)).Methods("GET")
	router.HandleFunc("/posts", gate(handlers.CreatePost(posts))).Methods("POST")
	router.HandleFunc("/posts/{id}", gate(handlers.UpdatePost(posts))).Methods("PUT")
	router.HandleFunc("/posts/{id}", gate(handlers.DeletePost(posts))).Methods("DELETE")
	router.HandleFunc("/posts/{id}/like", gate(handlers.LikePost(posts))).Methods("POST")
	router.HandleFunc("/posts/{id}/unlike", gate(handlers.UnlikePost(posts))).Methods("POST")
	router.HandleFunc("/posts/{id}/comments", gate(handlers.CreateComment(posts))).Methods("POST")
	router.HandleFunc("/posts/{id}/comments/{commentId}", gate(handlers.UpdateComment(posts))).Methods("PUT")
	router.HandleFunc("/posts/{id}/comments/{commentId}", gate(handlers.DeleteComment(posts))).Methods("DELETE")

	return router
}
