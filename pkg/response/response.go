package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

// MessageUpdated is returned by write endpoints that do not echo the record.
const MessageUpdated = "Updated successfully!"

// Envelope represents the common response contract.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// JSON sends a success response carrying data.
func JSON(c *gin.Context, status int, data interface{}) {
	Coded(c, status, appErrors.CodeOK, "", data)
}

// Coded sends a success response with an explicit envelope code and message.
func Coded(c *gin.Context, status int, code int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Code: code, Message: message, Data: data})
}

// Updated answers a write that carries no canonical object back.
func Updated(c *gin.Context) {
	Coded(c, http.StatusOK, appErrors.CodeOK, MessageUpdated, nil)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Code: appErr.Envelope, Message: appErr.Message})
}
