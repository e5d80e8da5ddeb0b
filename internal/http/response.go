package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Todas las respuestas JSON usan {message, data?, error?}.

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string, errMsg string) {
	body := gin.H{"message": message}
	if errMsg != "" {
		body["error"] = errMsg
	}
	c.JSON(status, body)
}

// respondInternal nunca expone el error original al cliente.
func respondInternal(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "internal server error", "")
}
