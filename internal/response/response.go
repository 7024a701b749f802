package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datavet/pet-service/internal/domain"
)

// Success writes a 200 with the payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 with the payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// BadRequest writes a 400 with an error message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// NotFound writes a bodyless 404.
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// Error maps a domain error onto the HTTP status contract. Validation errors
// become 400, absence becomes a bodyless 404, anything else a 500.
func Error(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		BadRequest(c, err.Error())
	case domain.IsNotFound(err):
		NotFound(c)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
