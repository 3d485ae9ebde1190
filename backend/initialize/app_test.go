package initialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"postboard/backend/app/dto"
	"postboard/backend/app/models"
	"postboard/backend/app/password"
	"postboard/backend/config"
	"postboard/backend/global"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPepper   = "test-pepper"
	testPassword = "Abc123!"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	global.Logger = zerolog.Nop()
	cfg := &config.Config{
		DB:   config.DB{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "test.db")},
		JWT:  config.JWT{Secret: "test-secret", Algorithm: "HS256", ExpMin: 30},
		Auth: config.Auth{Pepper: testPepper, BcryptCost: bcrypt.MinCost},
		Log:  config.Log{Level: "disabled"},
	}
	app, err := BuildWithConfig(cfg)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["detail"]
}

func expect(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status %d, want %d: %s", w.Code, code, w.Body.String())
	}
}

func register(t *testing.T, app *App, username string) dto.UserResponse {
	t.Helper()
	w := do(t, app, http.MethodPost, "/users/", "", dto.UserCreateRequest{
		Email: username + "@example.com", Username: username, Password: testPassword,
	})
	expect(t, w, http.StatusCreated)
	return decode[dto.UserResponse](t, w)
}

func loginForm(app *App, username, pw string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {pw}}
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, app *App, username string) string {
	t.Helper()
	w := loginForm(app, username, testPassword)
	expect(t, w, http.StatusOK)
	tok := decode[dto.TokenResponse](t, w)
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Fatalf("token response %+v", tok)
	}
	return tok.AccessToken
}

func createPost(t *testing.T, app *App, token, title string) dto.PostResponse {
	t.Helper()
	w := do(t, app, http.MethodPost, "/posts/", token, dto.PostRequest{Title: title, Content: "content of " + title})
	expect(t, w, http.StatusCreated)
	return decode[dto.PostResponse](t, w)
}

type likeBody struct {
	PostID uint `json:"post_id"`
	Liked  bool `json:"liked"`
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	w := do(t, app, http.MethodGet, "/ping", "", nil)
	expect(t, w, http.StatusOK)
	if w.Body.String() != "pong" {
		t.Fatalf("body %q", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id")
	}
}

func TestRegisterStoresPepperedHash(t *testing.T) {
	app := newTestApp(t)
	u := register(t, app, "alice")
	if u.ID == 0 || u.Username != "alice" || len(u.Posts) != 0 || len(u.LikedPosts) != 0 {
		t.Fatalf("unexpected user %+v", u)
	}

	var stored models.User
	if err := app.DB.First(&stored, u.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Password == testPassword || stored.Password == testPassword+testPepper {
		t.Fatal("password stored without hashing")
	}
	if !password.NewHasher(testPepper, bcrypt.MinCost).Verify(testPassword, stored.Password) {
		t.Fatal("stored hash does not verify")
	}

	w := do(t, app, http.MethodPost, "/users", "", dto.UserCreateRequest{
		Email: "bob@example.com", Username: "bob", Password: testPassword,
	})
	expect(t, w, http.StatusCreated)
	if _, ok := decode[map[string]any](t, w)["password"]; ok {
		t.Fatal("password leaked in response")
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")

	cases := []struct {
		name   string
		body   dto.UserCreateRequest
		code   int
		detail string
	}{
		{"weak password", dto.UserCreateRequest{Email: "b@example.com", Username: "b", Password: "abc123"}, http.StatusBadRequest, "Password is not valid"},
		{"no lowercase", dto.UserCreateRequest{Email: "b@example.com", Username: "b", Password: "ABCDEF1!"}, http.StatusBadRequest, "Password is not valid"},
		{"duplicate username", dto.UserCreateRequest{Email: "other@example.com", Username: "alice", Password: testPassword}, http.StatusBadRequest, ""},
		{"duplicate email", dto.UserCreateRequest{Email: "alice@example.com", Username: "other", Password: testPassword}, http.StatusBadRequest, ""},
		{"bad email", dto.UserCreateRequest{Email: "nope", Username: "b", Password: testPassword}, http.StatusUnprocessableEntity, ""},
		{"missing username", dto.UserCreateRequest{Email: "b@example.com", Password: testPassword}, http.StatusUnprocessableEntity, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, app, http.MethodPost, "/users/", "", tc.body)
			expect(t, w, tc.code)
			got := detail(t, w)
			if tc.detail != "" && got != tc.detail {
				t.Fatalf("detail %q, want %q", got, tc.detail)
			}
			if got == "" {
				t.Fatal("empty detail")
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")

	wrongPw := loginForm(app, "alice", "Wrong123!")
	unknown := loginForm(app, "mallory", testPassword)
	expect(t, wrongPw, http.StatusForbidden)
	expect(t, unknown, http.StatusForbidden)
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", wrongPw.Body.String(), unknown.Body.String())
	}
	if detail(t, wrongPw) != "Invalid Credentials" {
		t.Fatalf("detail %q", detail(t, wrongPw))
	}

	missing := loginForm(app, "alice", "")
	expect(t, missing, http.StatusUnprocessableEntity)
}

func TestLoginAcceptsJSON(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")
	w := do(t, app, http.MethodPost, "/login", "", dto.LoginRequest{Username: "alice", Password: testPassword})
	expect(t, w, http.StatusOK)
	if decode[dto.TokenResponse](t, w).TokenType != "bearer" {
		t.Fatal("wrong token type")
	}
}

func TestAuthenticationRequired(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")
	token := login(t, app, "alice")

	for _, tc := range []struct{ name, header string }{
		{"missing", ""},
		{"wrong scheme", "Basic " + token},
		{"garbage", "Bearer not-a-token"},
		{"tampered", "Bearer " + token + "x"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			app.Router.ServeHTTP(w, req)
			expect(t, w, http.StatusUnauthorized)
			if w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatal("missing WWW-Authenticate header")
			}
		})
	}

	expect(t, do(t, app, http.MethodGet, "/users/", token, nil), http.StatusOK)
	expect(t, do(t, app, http.MethodPost, "/posts/", "", dto.PostRequest{Title: "t", Content: "c"}), http.StatusUnauthorized)
	expect(t, do(t, app, http.MethodPost, "/likes/", "", likeBody{PostID: 1, Liked: true}), http.StatusUnauthorized)
}

func TestTokenOfDeletedUserIsRejected(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	bobTok := login(t, app, "bob")

	expect(t, do(t, app, http.MethodDelete, fmt.Sprintf("/users/%d", alice.ID), bobTok, nil), http.StatusNoContent)
	w := do(t, app, http.MethodGet, "/users/", aliceTok, nil)
	expect(t, w, http.StatusUnauthorized)
	if detail(t, w) != "Could not validate credentials" {
		t.Fatalf("detail %q", detail(t, w))
	}
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	token := login(t, app, "alice")

	p := createPost(t, app, token, "hello")
	if p.Likes != 0 || !p.Published || p.Rating != 0 || p.User.ID != alice.ID || p.User.Username != "alice" {
		t.Fatalf("unexpected post %+v", p)
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		t.Fatal("updated_at before created_at")
	}

	unpublished := false
	w := do(t, app, http.MethodPost, "/posts", token, dto.PostRequest{Title: "draft", Content: "c", Published: &unpublished})
	expect(t, w, http.StatusCreated)
	if decode[dto.PostResponse](t, w).Published {
		t.Fatal("explicit published=false ignored")
	}

	path := fmt.Sprintf("/posts/%d", p.ID)
	got := decode[dto.PostResponse](t, do(t, app, http.MethodGet, path, "", nil))
	if got.Title != "hello" {
		t.Fatalf("get %+v", got)
	}

	rating := 5
	w = do(t, app, http.MethodPut, path, token, dto.PostRequest{Title: "replaced", Content: "new", Rating: &rating})
	expect(t, w, http.StatusOK)
	replaced := decode[dto.PostResponse](t, w)
	if replaced.Title != "replaced" || replaced.Content != "new" || replaced.Rating != 5 {
		t.Fatalf("replace %+v", replaced)
	}

	title := "patched"
	w = do(t, app, http.MethodPatch, path, token, dto.PostUpdateRequest{Title: &title})
	expect(t, w, http.StatusOK)
	patched := decode[dto.PostResponse](t, w)
	if patched.Title != "patched" || patched.Content != "new" || patched.Rating != 5 {
		t.Fatalf("patch touched other fields: %+v", patched)
	}

	expect(t, do(t, app, http.MethodPut, path, token, map[string]string{"title": "only title"}), http.StatusUnprocessableEntity)
	expect(t, do(t, app, http.MethodGet, "/posts/abc", "", nil), http.StatusUnprocessableEntity)

	expect(t, do(t, app, http.MethodDelete, path, token, nil), http.StatusNoContent)
	w = do(t, app, http.MethodGet, path, "", nil)
	expect(t, w, http.StatusNotFound)
	if detail(t, w) != "Post not found" {
		t.Fatalf("detail %q", detail(t, w))
	}
}

func TestPostOwnership(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")
	register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	bobTok := login(t, app, "bob")
	p := createPost(t, app, aliceTok, "mine")
	path := fmt.Sprintf("/posts/%d", p.ID)
	title := "stolen"

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodPut, dto.PostRequest{Title: "stolen", Content: "x"}},
		{http.MethodPatch, dto.PostUpdateRequest{Title: &title}},
		{http.MethodDelete, nil},
	} {
		t.Run(tc.method, func(t *testing.T) {
			w := do(t, app, tc.method, path, bobTok, tc.body)
			expect(t, w, http.StatusForbidden)
			if detail(t, w) != "Not allowed" {
				t.Fatalf("detail %q", detail(t, w))
			}
			expect(t, do(t, app, tc.method, "/posts/9999", bobTok, tc.body), http.StatusNotFound)
		})
	}

	if got := decode[dto.PostResponse](t, do(t, app, http.MethodGet, path, "", nil)); got.Title != "mine" {
		t.Fatalf("post changed: %+v", got)
	}
}

func TestListPostsSearchAndPagination(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")
	token := login(t, app, "alice")

	w := do(t, app, http.MethodGet, "/posts/", "", nil)
	expect(t, w, http.StatusNotFound)
	if detail(t, w) != "No posts found" {
		t.Fatalf("detail %q", detail(t, w))
	}

	for _, title := range []string{"foo one", "bar", "Foo two", "foo three", "xfoo"} {
		createPost(t, app, token, title)
	}

	titles := func(path string) []string {
		t.Helper()
		w := do(t, app, http.MethodGet, path, "", nil)
		expect(t, w, http.StatusOK)
		var out []string
		for _, p := range decode[[]dto.PostResponse](t, w) {
			out = append(out, p.Title)
		}
		return out
	}

	if got := titles("/posts/"); len(got) != 5 {
		t.Fatalf("all posts %v", got)
	}
	if got := strings.Join(titles("/posts/?search=foo"), ","); got != "foo one,foo three,xfoo" {
		t.Fatalf("search %q", got)
	}
	if got := strings.Join(titles("/posts/?search=foo&limit=2"), ","); got != "foo one,foo three" {
		t.Fatalf("limit %q", got)
	}
	if got := strings.Join(titles("/posts/?search=foo&limit=2&skip=2"), ","); got != "xfoo" {
		t.Fatalf("skip %q", got)
	}
	expect(t, do(t, app, http.MethodGet, "/posts/?search=zzz", "", nil), http.StatusNotFound)
	expect(t, do(t, app, http.MethodGet, "/posts/?limit=abc", "", nil), http.StatusUnprocessableEntity)
	expect(t, do(t, app, http.MethodGet, "/posts/?skip=-1", "", nil), http.StatusUnprocessableEntity)
}

func TestLikeToggle(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")
	register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	bobTok := login(t, app, "bob")
	p := createPost(t, app, aliceTok, "likeable")
	path := fmt.Sprintf("/posts/%d", p.ID)

	likes := func() int {
		t.Helper()
		return decode[dto.PostResponse](t, do(t, app, http.MethodGet, path, "", nil)).Likes
	}

	w := do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: p.ID, Liked: false})
	expect(t, w, http.StatusBadRequest)
	if detail(t, w) != "You already disliked this post" {
		t.Fatalf("detail %q", detail(t, w))
	}

	w = do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: p.ID, Liked: true})
	expect(t, w, http.StatusCreated)
	if echo := decode[likeBody](t, w); echo.PostID != p.ID || !echo.Liked {
		t.Fatalf("echo %+v", echo)
	}
	if likes() != 1 {
		t.Fatalf("likes %d", likes())
	}

	w = do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: p.ID, Liked: true})
	expect(t, w, http.StatusBadRequest)
	if detail(t, w) != "You already liked this post" {
		t.Fatalf("detail %q", detail(t, w))
	}

	expect(t, do(t, app, http.MethodPost, "/likes", aliceTok, likeBody{PostID: p.ID, Liked: true}), http.StatusCreated)
	if likes() != 2 {
		t.Fatalf("likes %d", likes())
	}

	w = do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: p.ID, Liked: false})
	expect(t, w, http.StatusCreated)
	if likes() != 1 {
		t.Fatalf("likes %d after unlike", likes())
	}

	w = do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: 9999, Liked: true})
	expect(t, w, http.StatusBadRequest)
	if !strings.HasPrefix(detail(t, w), "Error creating like") {
		t.Fatalf("detail %q", detail(t, w))
	}

	expect(t, do(t, app, http.MethodPost, "/likes/", bobTok, map[string]any{"post_id": p.ID}), http.StatusUnprocessableEntity)
}

func TestDeleteUserCascades(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	bobTok := login(t, app, "bob")

	alicePost := createPost(t, app, aliceTok, "alice post")
	bobPost := createPost(t, app, bobTok, "bob post")
	expect(t, do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: alicePost.ID, Liked: true}), http.StatusCreated)
	expect(t, do(t, app, http.MethodPost, "/likes/", aliceTok, likeBody{PostID: bobPost.ID, Liked: true}), http.StatusCreated)

	userPath := fmt.Sprintf("/users/%d", alice.ID)
	expect(t, do(t, app, http.MethodDelete, userPath, bobTok, nil), http.StatusNoContent)
	expect(t, do(t, app, http.MethodDelete, userPath, bobTok, nil), http.StatusNotFound)
	expect(t, do(t, app, http.MethodGet, userPath, bobTok, nil), http.StatusNotFound)
	expect(t, do(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", alicePost.ID), "", nil), http.StatusNotFound)

	var remaining int64
	if err := app.DB.Model(&models.Like{}).Where("user_id = ? OR post_id = ?", alice.ID, alicePost.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("%d likes survived the cascade", remaining)
	}
	if got := decode[dto.PostResponse](t, do(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", bobPost.ID), "", nil)); got.Likes != 0 {
		t.Fatalf("bob post likes %d", got.Likes)
	}
}

func TestUserReadsShapePostsAndLikes(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	bobTok := login(t, app, "bob")
	p := createPost(t, app, aliceTok, "shaped")
	expect(t, do(t, app, http.MethodPost, "/likes/", bobTok, likeBody{PostID: p.ID, Liked: true}), http.StatusCreated)

	a := decode[dto.UserResponse](t, do(t, app, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), bobTok, nil))
	if len(a.Posts) != 1 || a.Posts[0].Title != "shaped" || len(a.LikedPosts) != 0 {
		t.Fatalf("alice %+v", a)
	}
	b := decode[dto.UserResponse](t, do(t, app, http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), aliceTok, nil))
	if len(b.Posts) != 0 || len(b.LikedPosts) != 1 || b.LikedPosts[0].ID != p.ID {
		t.Fatalf("bob %+v", b)
	}

	all := decode[[]dto.UserResponse](t, do(t, app, http.MethodGet, "/users", aliceTok, nil))
	if len(all) != 2 {
		t.Fatalf("users %d", len(all))
	}
	expect(t, do(t, app, http.MethodGet, "/users/9999", aliceTok, nil), http.StatusNotFound)
}

func TestUserUpdates(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	aliceTok := login(t, app, "alice")
	createPost(t, app, aliceTok, "one")
	createPost(t, app, aliceTok, "two")
	createPost(t, app, aliceTok, "three")

	// no ownership rule: alice may update bob
	name := "robert"
	w := do(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", bob.ID), aliceTok, dto.UserUpdateRequest{Username: &name})
	expect(t, w, http.StatusOK)
	patched := decode[dto.UserResponse](t, w)
	if patched.Username != "robert" || patched.Email != "bob@example.com" {
		t.Fatalf("patch %+v", patched)
	}

	// post 3 exists but user 3 does not
	expect(t, do(t, app, http.MethodPatch, "/users/3", aliceTok, dto.UserUpdateRequest{Username: &name}), http.StatusNotFound)

	taken := "alice"
	expect(t, do(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", bob.ID), aliceTok, dto.UserUpdateRequest{Username: &taken}), http.StatusBadRequest)

	weak := "abc"
	expect(t, do(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", bob.ID), aliceTok, dto.UserUpdateRequest{Password: &weak}), http.StatusBadRequest)

	w = do(t, app, http.MethodPut, fmt.Sprintf("/users/%d", alice.ID), aliceTok, dto.UserCreateRequest{
		Email: "alice2@example.com", Username: "alice2", Password: "Xyz789?",
	})
	expect(t, w, http.StatusOK)
	if got := decode[dto.UserResponse](t, w); got.Username != "alice2" || len(got.Posts) != 3 {
		t.Fatalf("replace %+v", got)
	}
	expect(t, loginForm(app, "alice2", "Xyz789?"), http.StatusOK)
	expect(t, loginForm(app, "alice2", testPassword), http.StatusForbidden)

	expect(t, do(t, app, http.MethodPut, "/users/9999", aliceTok, dto.UserCreateRequest{
		Email: "x@example.com", Username: "x", Password: testPassword,
	}), http.StatusNotFound)
}
