package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	api.register("alice", "pw1")

	w := api.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice",
		"password": "other",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", message(t, w))

	// The first registration still works.
	api.login("alice", "pw1")
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, body := range []map[string]string{
		{"username": "alice"},
		{"password": "pw"},
		{},
	} {
		w := api.do(http.MethodPost, "/register", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", message(t, w))
	}
}

// Unknown usernames and wrong passwords must be indistinguishable.
func TestLogin_UniformFailureShape(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	api.register("alice", "pw1")

	wrongPw := api.do(http.MethodPost, "/login", "", map[string]string{
		"username": "alice",
		"password": "nope",
	})
	unknownUser := api.do(http.MethodPost, "/login", "", map[string]string{
		"username": "mallory",
		"password": "pw1",
	})

	require.Equal(t, http.StatusBadRequest, wrongPw.Code)
	require.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Equal(t, wrongPw.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Invalid username or password", message(t, wrongPw))
}

func TestLogin_TokenWorksAgainstGate(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	api.register("alice", "pw1")
	token := api.login("alice", "pw1")

	post := api.createPost(token, "hello")
	assert.Equal(t, "alice", post.AuthorUsername)
}
