package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microblog-app/microblog-backend/models"
	"github.com/microblog-app/microblog-backend/routes"
	"github.com/microblog-app/microblog-backend/store"
)

// testAPI wires the real router, middleware, and handlers over the memory
// stores, so these suites exercise the full request path.
type testAPI struct {
	t      *testing.T
	router *mux.Router
	posts  store.PostStore
	users  store.UserStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	secret := []byte("test-secret")

	router := mux.NewRouter()
	routes.CreateUserRoutes(users, posts, secret, router)
	routes.CreatePostRoutes(posts, users, secret, router)

	return &testAPI{t: t, router: router, posts: posts, users: users}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(username, password string) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
}

func (a *testAPI) login(username, password string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decodeBody(a.t, w, &resp)
	require.NotEmpty(a.t, resp.Token)
	require.Equal(a.t, username, resp.Username)
	return resp.Token
}

func (a *testAPI) createPost(token, content string) models.Post {
	a.t.Helper()

	w := a.do(http.MethodPost, "/posts", token, map[string]string{"content": content})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	decodeBody(a.t, w, &post)
	return post
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	return resp.Message
}

// The register → login → post → like → comment → delete walk-through, with a
// second user exercising the ownership rules along the way.
func TestEndToEndScenario(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	api.register("alice", "pw1")
	aliceToken := api.login("alice", "pw1")

	post := api.createPost(aliceToken, "hello")
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Equal(t, 0, post.LikeCount)
	assert.Empty(t, post.Comments)
	postID := post.ID.Hex()

	w := api.do(http.MethodPost, "/posts/"+postID+"/like", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes struct {
		Likes int `json:"likes"`
	}
	decodeBody(t, w, &likes)
	assert.Equal(t, 1, likes.Likes)

	api.register("bob", "pw2")
	bobToken := api.login("bob", "pw2")

	w = api.do(http.MethodDelete, "/posts/"+postID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/posts/"+postID+"/comments", bobToken, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	decodeBody(t, w, &comment)
	assert.Equal(t, "bob", comment.AuthorUsername)
	assert.Equal(t, "nice", comment.Text)

	w = api.do(http.MethodDelete, "/posts/"+postID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/users/alice/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var remaining []models.Post
	decodeBody(t, w, &remaining)
	assert.Empty(t, remaining)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running!", w.Body.String())
}
