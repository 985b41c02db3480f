package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/crime-analytics-go/internal/service"
	"github.com/jengzang/crime-analytics-go/internal/stats"
	"github.com/jengzang/crime-analytics-go/pkg/response"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"bad request", fmt.Errorf("%w: field is required", service.ErrBadRequest), http.StatusBadRequest, "Bad request"},
		{"invalid bins", fmt.Errorf("histogram: %w", stats.ErrInvalidBins), http.StatusBadRequest, "Bad request"},
		{"no data", fmt.Errorf("failed to summarize X: %w", stats.ErrNoData), http.StatusNotFound, "No data"},
		{"invariant", fmt.Errorf("ratio: %w", stats.ErrInvariant), http.StatusInternalServerError, "Internal server error"},
		{"storage", errors.New("database is locked"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/crimes/hour", nil)

			writeError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.title, body.Error)
			assert.Equal(t, tt.err.Error(), body.Detail)
		})
	}
}
