package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the body of a failed request
type ErrorResponse struct {
	Code   int    `json:"code"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Success sends a 200 response with the payload as the body
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Data sends a 200 response wrapping the payload under "data"
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Error sends an error response. err, when set, becomes the detail.
func Error(c *gin.Context, code int, message string, err error) {
	body := ErrorResponse{
		Code:  code,
		Error: message,
	}
	if err != nil {
		body.Detail = err.Error()
	}
	c.AbortWithStatusJSON(code, body)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "Bad request", err)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, err error) {
	Error(c, http.StatusNotFound, "No data", err)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, "Internal server error", err)
}
