package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolday/core/internal/adapters/repository"
	"github.com/schoolday/core/internal/application/services"
	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/clock"
	"github.com/schoolday/core/internal/infrastructure/config"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/infrastructure/notify"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newHomeworkTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := logger.NewNop()
	sysClock := clock.NewSystemClock()

	repo := repository.NewMemoryHomeworkRepository(repository.SeedHomework(sysClock.Now()))
	svc := services.NewHomeworkService(repo, sysClock, notify.NewLogNotifier(log), log)
	handler := NewHomeworkHandler(svc, log)

	e := newEcho()
	e.GET("/homework", handler.List)
	e.GET("/homework/subjects", handler.Subjects)
	e.POST("/homework/:id/toggle", handler.Toggle)
	return e
}

func TestHomeworkListEndpoint(t *testing.T) {
	e := newHomeworkTestServer(t)

	rec := doRequest(e, http.MethodGet, "/homework", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HomeworkListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 4)
	assert.Nil(t, resp.SubjectFilter)

	// Query params replace the sticky filter.
	rec = doRequest(e, http.MethodGet, "/homework?subject=Mathematics&status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	require.NotNil(t, resp.SubjectFilter)
	assert.Equal(t, "Mathematics", *resp.SubjectFilter)

	// Omitted params leave the previous selection in place.
	rec = doRequest(e, http.MethodGet, "/homework", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)

	// subject=all resets to every subject.
	rec = doRequest(e, http.MethodGet, "/homework?subject=all&status=all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 4)
}

func TestHomeworkListInvalidStatus(t *testing.T) {
	e := newHomeworkTestServer(t)

	rec := doRequest(e, http.MethodGet, "/homework?status=done", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHomeworkSubjectsEndpoint(t *testing.T) {
	e := newHomeworkTestServer(t)

	rec := doRequest(e, http.MethodGet, "/homework/subjects", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var subjects []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subjects))
	assert.Equal(t, []string{"Mathematics", "Science", "English"}, subjects)
}

func TestHomeworkToggleEndpoint(t *testing.T) {
	e := newHomeworkTestServer(t)

	rec := doRequest(e, http.MethodPost, "/homework/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var item entities.HomeworkItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, entities.HomeworkStatusCompleted, item.Status)

	rec = doRequest(e, http.MethodPost, "/homework/999/toggle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newThreadTestServer(t *testing.T) (*echo.Echo, *services.ThreadService) {
	t.Helper()
	log := logger.NewNop()
	sysClock := clock.NewSystemClock()

	cfg := config.ThreadConfig{
		DeliveredDelay: time.Minute,
		ReadDelay:      2 * time.Minute,
		TypingDuration: 3 * time.Minute,
	}
	svc := services.NewThreadService(cfg, sysClock, clock.NewTimerScheduler(), notify.NewLogNotifier(log), log, repository.SeedMessages(sysClock.Now()))
	t.Cleanup(func() { _ = svc.Close() })

	handler := NewThreadHandler(svc, log)

	e := newEcho()
	e.GET("/thread", handler.GetThread)
	e.POST("/thread/messages", handler.SendMessage)
	e.POST("/thread/replies", handler.ReceiveMessage)
	return e, svc
}

func TestThreadReplyEndpoint(t *testing.T) {
	e, svc := newThreadTestServer(t)

	rec := doRequest(e, http.MethodPost, "/thread/replies", `{"text":"great progress this week"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg entities.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, entities.SenderTeacher, msg.Sender)
	assert.Equal(t, entities.MessageStatusRead, msg.Status)

	// Replies do not raise the typing indicator; only parent sends do.
	assert.False(t, svc.Typing())

	rec = doRequest(e, http.MethodPost, "/thread/replies", `{"text":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	log := svc.Messages()
	require.Len(t, log, 3)
	assert.Equal(t, "great progress this week", log[2].Text)
}

func TestThreadEndpoints(t *testing.T) {
	e, _ := newThreadTestServer(t)

	rec := doRequest(e, http.MethodGet, "/thread", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Messages []entities.Message `json:"messages"`
		Typing   bool               `json:"typing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Messages, 2)
	assert.False(t, view.Typing)

	rec = doRequest(e, http.MethodPost, "/thread/messages", `{"text":"hello there"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg entities.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, entities.SenderParent, msg.Sender)
	assert.Equal(t, entities.MessageStatusSent, msg.Status)

	rec = doRequest(e, http.MethodGet, "/thread", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Messages, 3)
	assert.True(t, view.Typing)
}

func TestThreadSendEmptyMessage(t *testing.T) {
	e, _ := newThreadTestServer(t)

	for _, body := range []string{`{"text":""}`, `{"text":"   "}`} {
		rec := doRequest(e, http.MethodPost, "/thread/messages", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	}

	rec := doRequest(e, http.MethodGet, "/thread", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Messages []entities.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Messages, 2)
}

func TestThemeEndpoint(t *testing.T) {
	handler := NewThemeHandler(logger.NewNop())

	e := newEcho()
	e.GET("/theme/:mode", handler.Palette)

	rec := doRequest(e, http.MethodGet, "/theme/dark", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var palette entities.ThemePalette
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &palette))
	assert.Equal(t, "#A78BFA", palette.Primary)

	rec = doRequest(e, http.MethodGet, "/theme/light", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &palette))
	assert.Equal(t, "#7C3AED", palette.Primary)

	rec = doRequest(e, http.MethodGet, "/theme/sepia", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
