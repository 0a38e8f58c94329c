package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	api "unimitr-backend/internal/api/http"
	"unimitr-backend/internal/cache"
	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/security"
	"unimitr-backend/internal/storage"
	"unimitr-backend/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatService struct{ mock.Mock }

func (m *MockChatService) Reply(ctx context.Context, message string) (*chat.Completion, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Completion), args.Error(1)
}

func newMediaRouter(t *testing.T, chatSvc *MockChatService) (http.Handler, security.TokenManager) {
	t.Helper()
	logger.InitializeWithWriter("error", "text", io.Discard)

	store, err := storage.NewLocalStore(storage.Config{
		Dir:          t.TempDir(),
		BaseURL:      "/media/banners",
		MaxBytes:     64,
		AllowedTypes: []string{"image/png"},
	})
	require.NoError(t, err)

	tm := security.NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	events := workflow.NewEngine[*domain.Event, *domain.EventRegistration](workflow.Events, newMemRepo[*domain.Event, *domain.EventRegistration]())
	handlers := api.NewHandlers(nil, nil, nil, nil, chatSvc, api.NewUploadHandler(store, 64),
		api.NewWorkflowHandler(events, cache.New(),
			func() *domain.Event { return &domain.Event{} },
			func() *domain.EventRegistration { return &domain.EventRegistration{} }))
	return api.NewRouter(handlers, api.NewAuthMiddleware(tm, config.DefaultAccess())), tm
}

// pngHeader is the PNG file signature, enough for content sniffing.
const pngHeader = "\x89PNG\r\n\x1a\n"

func bannerRequest(t *testing.T, contentType string, data []byte, token string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="banner.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/banner/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestUpload_BannerRoundTrip(t *testing.T) {
	router, tm := newMediaRouter(t, nil)
	token, err := tm.GenerateAccessToken(security.Identity{UserID: 7, Email: "a@uni.edu", Username: "a"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bannerRequest(t, "image/png", []byte(pngHeader+"fake"), ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, bannerRequest(t, "image/png", []byte(pngHeader+"fake"), token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, strings.HasSuffix(out.Key, ".png"))
	assert.Equal(t, "/media/banners/"+out.Key, out.URL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, out.URL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader+"fake", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/banners/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_Rejects(t *testing.T) {
	router, tm := newMediaRouter(t, nil)
	token, err := tm.GenerateAccessToken(security.Identity{UserID: 7, Email: "a@uni.edu", Username: "a"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		contentType string
		data        []byte
		detail      string
	}{
		{"Wrong type", "image/gif", []byte("GIF89a"), "Invalid content type"},
		{"Declared png but text", "image/png", []byte("hello, not an image"), "Invalid content type"},
		{"Undeclared text", "application/octet-stream", []byte("hello, not an image"), "Invalid content type"},
		{"Too large", "image/png", append([]byte(pngHeader), bytes.Repeat([]byte("x"), 60)...), "File too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, bannerRequest(t, tt.contentType, tt.data, token))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"detail":"`+tt.detail+`"}`, rec.Body.String())
		})
	}
}

func TestChat_Responses(t *testing.T) {
	tests := []struct {
		name   string
		reply  *chat.Completion
		err    error
		status int
		body   string
	}{
		{
			name:   "Raw provider body",
			reply:  &chat.Completion{Text: "hi", Raw: json.RawMessage(`{"candidates":[]}`)},
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
		},
		{
			name:   "Text only",
			reply:  &chat.Completion{Text: "hello"},
			status: http.StatusOK,
			body:   `{"text":"hello"}`,
		},
		{
			name:   "Empty message",
			err:    domain.NewValidationError("message", "No message provided"),
			status: http.StatusBadRequest,
			body:   `{"error":"No message provided"}`,
		},
		{
			name:   "Provider failure",
			err:    &chat.ProviderError{Status: 429, Details: "quota"},
			status: http.StatusInternalServerError,
			body:   `{"error":"Gemini API error","status":429,"details":"quota"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatSvc := new(MockChatService)
			if tt.err != nil {
				chatSvc.On("Reply", mock.Anything, "hey").Return(nil, tt.err)
			} else {
				chatSvc.On("Reply", mock.Anything, "hey").Return(tt.reply, nil)
			}
			router, _ := newMediaRouter(t, chatSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/mental-health/chat/", strings.NewReader(`{"message":"hey"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			chatSvc.AssertExpectations(t)
		})
	}
}

func TestUpload_BannerUsableInEvent(t *testing.T) {
	router, tm := newMediaRouter(t, nil)
	token, err := tm.GenerateAccessToken(security.Identity{UserID: 7, Email: "a@uni.edu", Username: "a"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bannerRequest(t, "image/png", []byte(pngHeader+"fake"), token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	for _, banner := range []string{out.URL, "", "https://cdn.example.com/a.png"} {
		body := `{"title":"Hackathon","date":"2026-11-01","time":"10:00","location":"Hall A","category":"tech","bannerUrl":"` + banner + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/events/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, "bannerUrl %q: %s", banner, rec.Body.String())

		var ev domain.Event
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
		require.NotNil(t, ev.BannerURL)
		assert.Equal(t, banner, *ev.BannerURL)
	}
}

func TestUpload_DeleteBanner(t *testing.T) {
	router, tm := newMediaRouter(t, nil)
	user, err := tm.GenerateAccessToken(security.Identity{UserID: 7, Email: "a@uni.edu", Username: "a"})
	require.NoError(t, err)
	staff, err := tm.GenerateAccessToken(security.Identity{UserID: 1, Email: "s@uni.edu", Username: "s", IsStaff: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, bannerRequest(t, "image/png", []byte(pngHeader+"fake"), user))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	del := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, out.URL, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, del("").Code)
	rec = del(user)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"detail":"You do not have permission to perform this action."}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, del(staff).Code)
	assert.Equal(t, http.StatusNotFound, del(staff).Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, out.URL, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
