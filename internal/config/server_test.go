package config

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"FaceAttendance/internal/api/student/repository/mock"
	"FaceAttendance/internal/facematch"
	"FaceAttendance/pkg/bcrypt"
	faceMock "FaceAttendance/pkg/face/mock"
	redisMock "FaceAttendance/pkg/redis/mock"
	"FaceAttendance/pkg/storage"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	server    *Server
	repo      *mock.MockRepository
	extractor *faceMock.MockExtractor
	cache     *redisMock.MockGalleryCache
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := storage.NewLocal(t.TempDir(), log)
	require.NoError(t, err)

	ts := testServer{
		repo:      mock.NewMockRepository(),
		extractor: faceMock.NewMockExtractor(),
		cache:     redisMock.NewMockGalleryCache(),
	}

	ts.server, err = NewServer(
		WithFiber(NewFiber(log, 10*1024*1024)),
		WithLogger(log),
		WithRepository(ts.repo),
		WithExtractor(ts.extractor),
		WithStorage(store),
		WithGalleryCache(ts.cache),
		WithBcryptUtils(bcrypt.NewWithCost(4)),
	)
	require.NoError(t, err)
	ts.server.RegisterHandler()
	return ts
}

type upload struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (ts testServer) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := ts.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestNewServerRequiresDependencies(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := NewServer(WithFiber(NewFiber(log, 1024)), WithLogger(log))
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello World", body["message"])
}

func TestSignupLoginSearchFlow(t *testing.T) {
	ts := newTestServer(t)

	a1Photo := []byte("portrait of A1")
	ts.extractor.SetFaces(a1Photo, facematch.Embedding{1, 0, 0})

	status, body := ts.do(t, multipartRequest(t, "/student-signup", map[string]string{
		"enroll_number": "A1",
		"password":      "secret",
		"full_name":     "Ada",
		"batch":         "2024",
		"course":        "CS",
	}, &upload{field: "image", filename: "a1.jpg", content: a1Photo}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User created successfully", body["message"])

	status, body = ts.do(t, multipartRequest(t, "/student-signup", map[string]string{
		"enroll_number": "B2",
		"password":      "secret",
	}, nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User created successfully", body["message"])

	status, body = ts.do(t, multipartRequest(t, "/student-signup", map[string]string{
		"enroll_number": "A1",
		"password":      "other",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["message"])

	logins := []struct {
		enroll, password, want string
	}{
		{"A1", "secret", "Login successful"},
		{"A1", "wrong", "Incorrect password"},
		{"ZZ", "secret", "User does not exist"},
	}
	for _, l := range logins {
		status, body = ts.do(t, formRequest("/login", url.Values{"enroll_number": {l.enroll}, "password": {l.password}}))
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, l.want, body["message"])
	}

	group := []byte("class photo")
	ts.extractor.SetFaces(group, facematch.Embedding{0.98, 0.1, 0}, facematch.Embedding{0, 0, 1})

	status, body = ts.do(t, multipartRequest(t, "/search", map[string]string{
		"date":   "2024-03-01",
		"batch":  "2024",
		"course": "CS",
	}, &upload{field: "image", filename: "class.jpg", content: group}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"A1"}, body["message"])

	stranger := []byte("strangers")
	ts.extractor.SetFaces(stranger, facematch.Embedding{0, 1, 0})

	status, body = ts.do(t, multipartRequest(t, "/search", nil,
		&upload{field: "photo", filename: "class.png", content: stranger}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["message"])
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, multipartRequest(t, "/student-signup", map[string]string{
		"enroll_number": "A1",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, 0, ts.repo.StudentCount())
}

func TestSearchErrors(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, multipartRequest(t, "/search", map[string]string{"date": "2024-03-01"}, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid file type", body["message"])

	status, body = ts.do(t, multipartRequest(t, "/search", nil,
		&upload{field: "image", filename: "class.gif", content: []byte("gif")}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid file type", body["message"])

	status, body = ts.do(t, multipartRequest(t, "/search", nil,
		&upload{field: "image", filename: "empty.jpg", content: []byte("no faces here")}))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", body["message"])
}

func TestLiveSearchRequiresUpgrade(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/search/ws", nil))
	assert.Equal(t, http.StatusUpgradeRequired, status)
	assert.NotEmpty(t, body["message"])
}
