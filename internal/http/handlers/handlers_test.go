package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/config"
	"github.com/ksarmiento/blog-backend/internal/database/model"
	"github.com/ksarmiento/blog-backend/internal/http/middleware"
	"github.com/ksarmiento/blog-backend/internal/http/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// fakeMailer records outgoing reset mail instead of dialing SMTP.
type fakeMailer struct {
	to   string
	link string
	err  error
}

func (m *fakeMailer) SendResetLink(to, link string) error {
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.link = link
	return nil
}

var errSendFailed = errors.New("smtp connection refused")

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mailer *fakeMailer
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}))

	cfg := &config.Config{
		SecretKey:    testSecret,
		BcryptCost:   4, // keep the tests fast
		ClientOrigin: "http://localhost:5173",
		ResetURL:     "http://localhost:5173/resetPassword",
		UploadsDir:   t.TempDir(),
	}

	mailer := &fakeMailer{}
	return &testEnv{
		router: router.NewRouter(cfg, db, mailer),
		db:     db,
		mailer: mailer,
		cfg:    cfg,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(t *testing.T, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, name, email, password string) {
	t.Helper()
	w := e.postJSON(t, "/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

// login registers nothing; it signs in an existing user and returns the
// session cookie.
func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := e.postJSON(t, "/auth/login", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type multipartRequest struct {
	fields   map[string]string
	filename string
	content  []byte
}

func (e *testEnv) sendMultipart(t *testing.T, method, path string, mr multipartRequest, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range mr.fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if mr.filename != "" {
		fw, err := w.CreateFormFile("file", mr.filename)
		require.NoError(t, err)
		_, err = fw.Write(mr.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
