package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeWHoward/DockerPlayground/internal/errs"
)

func userContext(userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/"+userID, nil), rec)
	c.SetPath("/users/:user_id")
	c.SetParamNames("user_id")
	c.SetParamValues(userID)
	return c, rec
}

func TestNewRequest(t *testing.T) {
	proto := &GetUserRequest{UserID: 7}

	a := newRequest(proto)
	b := newRequest(proto)

	assert.NotSame(t, proto, a)
	assert.NotSame(t, a, b)
	assert.Zero(t, a.UserID)
	assert.Equal(t, int64(7), proto.UserID, "the prototype is never written")
}

func TestHandle(t *testing.T) {
	var seen []*GetUserRequest
	endpoint := Handle(Handler{}, func(c echo.Context, req *GetUserRequest) (map[string]any, error) {
		seen = append(seen, req)
		if req.UserID == 404 {
			return nil, errs.NewNotFoundError("User not found", true, nil)
		}
		return map[string]any{"id": req.UserID}, nil
	}, http.StatusOK, &GetUserRequest{})

	t.Run("writes the result", func(t *testing.T) {
		c, rec := userContext("5")
		require.NoError(t, endpoint(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":5}`, rec.Body.String())
	})

	t.Run("each request binds into its own value", func(t *testing.T) {
		c, _ := userContext("6")
		require.NoError(t, endpoint(c))
		require.Len(t, seen, 2)
		assert.NotSame(t, seen[0], seen[1])
		assert.Equal(t, int64(5), seen[0].UserID)
	})

	t.Run("handler error is returned", func(t *testing.T) {
		c, _ := userContext("404")
		err := endpoint(c)
		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("bind error skips the handler", func(t *testing.T) {
		before := len(seen)
		c, _ := userContext("abc")
		err := endpoint(c)
		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Len(t, seen, before)
	})
}
