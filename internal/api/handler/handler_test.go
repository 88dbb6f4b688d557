package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		query string
		want  *bool
	}{
		{"/", nil},
		{"/?watched=true", boolPtr(true)},
		{"/?watched=True", boolPtr(true)},
		{"/?watched=false", boolPtr(false)},
		{"/?watched=1", boolPtr(false)},
		{"/?watched=", boolPtr(false)},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := testContext(tt.query)
			assert.Equal(t, tt.want, queryBool(c, "watched"))
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestQueryInt(t *testing.T) {
	c, _ := testContext("/?year=1999")
	year, err := queryInt(c, "year")
	require.NoError(t, err)
	assert.Equal(t, 1999, *year)

	c, _ = testContext("/?year=")
	year, err = queryInt(c, "year")
	require.NoError(t, err)
	assert.Nil(t, year)

	c, _ = testContext("/?year=199x")
	_, err = queryInt(c, "year")
	assert.Error(t, err)
}

func TestParseUintParam(t *testing.T) {
	id, err := parseUintParam("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, in := range []string{"", "-1", "1.5", "abc", "99999999999999999999999"} {
		_, err := parseUintParam(in)
		assert.Error(t, err, in)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", &collection.Error{Kind: collection.ErrNotFound, Message: "Movie not found"}, http.StatusNotFound, `{"error":"Movie not found"}`},
		{"conflict", &collection.Error{Kind: collection.ErrConflict, Message: "dup"}, http.StatusBadRequest, `{"error":"dup"}`},
		{"invalid", &collection.Error{Kind: collection.ErrInvalid, Message: "bad"}, http.StatusBadRequest, `{"error":"bad"}`},
		{"internal", errors.New("storage: disk I/O error"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("/")
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
