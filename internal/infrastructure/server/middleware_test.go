package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
)

func newRoleContext(e *echo.Echo, role interface{}) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/thread/replies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("user_role", role)
		c.Set("user", "4f8b0f13-1111-2222-3333-444455556666")
	}
	return c, rec
}

func TestRequireRole(t *testing.T) {
	s := &Server{logger: logger.NewNop()}
	e := echo.New()

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("listed role passes", func(t *testing.T) {
		c, rec := newRoleContext(e, entities.UserRoleTeacher)
		err := s.requireRole(entities.UserRoleTeacher)(ok)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		c, rec := newRoleContext(e, entities.UserRoleIntern)
		err := s.requireRole(entities.UserRoleTeacher, entities.UserRoleIntern)(ok)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unlisted role is forbidden", func(t *testing.T) {
		c, _ := newRoleContext(e, entities.UserRoleStudent)
		err := s.requireRole(entities.UserRoleTeacher)(ok)(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing role info is forbidden", func(t *testing.T) {
		c, _ := newRoleContext(e, nil)
		err := s.requireRole(entities.UserRoleTeacher)(ok)(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entities.ErrEmptyMessage, http.StatusUnprocessableEntity},
		{entities.ErrHomeworkNotFound, http.StatusNotFound},
		{entities.ErrUserNotFound, http.StatusNotFound},
		{entities.ErrUnauthorized, http.StatusUnauthorized},
		{entities.ErrInvalidThemeMode, http.StatusBadRequest},
		{entities.ErrThreadClosed, http.StatusConflict},
	}

	for _, tt := range tests {
		code := http.StatusInternalServerError
		mapDomainError(tt.err, &code)
		assert.Equal(t, tt.want, code, "for %v", tt.err)
	}
}
