package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestEnvelope(t *testing.T) {
	w := render(func(c *gin.Context) { SuccessWithPagination(c, []int{1, 2}, 1, 2, 5) })
	assert.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Code)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 5, body.Pagination.Total)
}

func TestErrorResponses(t *testing.T) {
	cases := map[int]func(c *gin.Context){
		http.StatusBadRequest:          func(c *gin.Context) { BadRequest(c, "bad") },
		http.StatusNotFound:            func(c *gin.Context) { NotFound(c, "") },
		http.StatusConflict:            func(c *gin.Context) { Conflict(c, "taken") },
		http.StatusTooManyRequests:     TooManyRequests,
		http.StatusUnauthorized:        Unauthorized,
		http.StatusForbidden:           Forbidden,
		http.StatusInternalServerError: ServerError,
	}
	for status, fn := range cases {
		w := render(fn)
		assert.Equal(t, status, w.Code)

		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 0, body.Code)
		assert.NotEmpty(t, body.Mess)
	}
}
