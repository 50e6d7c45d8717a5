package routes

import (
	"github.com/gorilla/mux"

	"github.com/microblog-app/microblog-backend/handlers"
	"github.com/microblog-app/microblog-backend/store"
)

func CreateUserRoutes(users store.UserStore, posts store.PostStore, secret []byte, router *mux.Router) *mux.Router {
	router.HandleFunc("/", handlers.HealthCheck()).Methods("GET")
	router.HandleFunc("/register", handlers.Register(users)).Methods("POST")
	router.HandleFunc("/login", handlers.Login(users, secret)).Methods("POST")
	router.HandleFunc("/users/{username}/posts", handlers.GetPostsByUser(posts)).Methods("GET")

	return router
}
