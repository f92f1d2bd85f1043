package api_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAvatarStore struct {
	key         string
	contentType string
	body        []byte
}

func (s *recordingAvatarStore) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.body = key, contentType, data
	return "https://cdn.example.com/avatars/" + key, nil
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Image string `json:"image"`
	} `json:"user"`
}

func TestRegisterJSON(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodPost, "/users/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[authResponse](t, w)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Contains(t, resp.User.Image, "dicebear")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "secret1"}},
		{"bad email", map[string]string{"name": "A", "email": "nope", "password": "secret1"}},
		{"short password", map[string]string{"name": "A", "email": "a@example.com", "password": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/users/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.register(t, "Ada", "ada@example.com")

	w := env.do(t, http.MethodPost, "/users/register", map[string]string{
		"name": "Other", "email": "ada@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterMultipartWithImage(t *testing.T) {
	avatars := &recordingAvatarStore{}
	env := newTestEnv(t, avatars, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Pic"))
	require.NoError(t, mw.WriteField("email", "pic@example.com"))
	require.NoError(t, mw.WriteField("password", "secret1"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="me.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[authResponse](t, w)
	assert.Equal(t, "https://cdn.example.com/avatars/"+avatars.key, resp.User.Image)
	assert.Equal(t, resp.User.ID+".png", avatars.key)
	assert.Equal(t, "image/png", avatars.contentType)
	assert.Equal(t, []byte("fake png"), avatars.body)
}

func TestRegisterMultipartRejectsNonImage(t *testing.T) {
	env := newTestEnv(t, &recordingAvatarStore{}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Pic"))
	require.NoError(t, mw.WriteField("email", "pic@example.com"))
	require.NoError(t, mw.WriteField("password", "secret1"))
	part, err := mw.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.register(t, "Ada", "ada@example.com")

	w := env.do(t, http.MethodPost, "/users/login", map[string]string{
		"email": "ada@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[authResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Empty(t, resp.Message)

	w = env.do(t, http.MethodPost, "/users/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/users/login", map[string]string{"email": "ada@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	token := env.register(t, "Ada", "ada@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	user := resp["user"].(map[string]any)
	assert.Equal(t, "Ada", user["name"])

	w = env.do(t, http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/users/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
