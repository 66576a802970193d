// Package response writes the RPC envelopes. Success payloads are wrapped
// in {"result":{"data":…}}; failures in {"error":{…}} with a machine-readable
// cause code distinct from the human-readable message.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Generic cause codes used outside the session authority. Authority
// failures carry their own causes (NO_TOKEN, INVALID_CLAIMS, …).
const (
	CauseInvalidInput       = "INVALID_INPUT"
	CauseInvalidCredentials = "INVALID_CREDENTIALS"
	CauseUserNotFound       = "USER_NOT_FOUND"
	CauseEmailTaken         = "EMAIL_TAKEN"
	CauseProcedureNotFound  = "PROCEDURE_NOT_FOUND"
	CauseWrongMethod        = "WRONG_METHOD"
	CauseRateLimited        = "RATE_LIMITED"
	CauseDuplicateRequest   = "DUPLICATE_REQUEST"
	CauseInternal           = "INTERNAL"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// OK sends a 200 result envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"data": data}})
}

// Paged sends a 200 result envelope with pagination metadata.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"data":       data,
		"pagination": pagination,
	}})
}

// Err sends an error envelope and aborts the request.
func Err(c *gin.Context, status int, cause, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    status,
		"cause":   cause,
		"message": message,
	}})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, cause, message string) {
	Err(c, http.StatusBadRequest, cause, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, cause, message string) {
	Err(c, http.StatusUnauthorized, cause, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, cause, message string) {
	Err(c, http.StatusNotFound, cause, message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, cause, message string) {
	Err(c, http.StatusConflict, cause, message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	Err(c, http.StatusInternalServerError, CauseInternal, err.Error())
}
