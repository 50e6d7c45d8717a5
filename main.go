package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/microblog-app/microblog-backend/config"
	"github.com/microblog-app/microblog-backend/database"
	"github.com/microblog-app/microblog-backend/log"
	"github.com/microblog-app/microblog-backend/routes"
	"github.com/microblog-app/microblog-backend/store"
)

func main() {
	log.Info.Println("Starting microblog backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Error.Fatalf("config: %v", err)
	}

	var users store.UserStore
	var posts store.PostStore

	switch cfg.StoreBackend {
	case "memory":
		log.Warn.Println("Using in-memory store; data will not survive a restart")
		users = store.NewMemoryUserStore()
		posts = store.NewMemoryPostStore()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Error.Fatalf("mongo: %v", err)
		}
		log.Info.Println("MongoDB connected")

		userStore := store.NewMongoUserStore(db)
		if err := userStore.EnsureIndexes(ctx); err != nil {
			log.Error.Fatalf("mongo indexes: %v", err)
		}
		users = userStore
		posts = store.NewMongoPostStore(db)
	}

	secret := []byte(cfg.SecretKey)
	router := mux.NewRouter()
	routes.CreateUserRoutes(users, posts, secret, router)
	routes.CreatePostRoutes(posts, users, secret, router)

	log.Info.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), router); err != nil {
		log.Error.Fatalf("server: %v", err)
	}
}
