package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/auth"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when no user is authenticated.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success envelope for operations that do
// not return an entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// --- Success Response Helpers ---

// respondMessage sends a 200 OK response with a message envelope.
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns 0, false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID extracts an unsigned integer ID from an optional
// query parameter. Absent and unparseable values both come back nil, so a
// malformed filter reads as no filter.
func parseOptionalQueryID(c *gin.Context, paramName string) *uint {
	idStr := c.Query(paramName)
	if idStr == "" {
		return nil
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil
	}
	parsed := uint(id)
	return &parsed
}
