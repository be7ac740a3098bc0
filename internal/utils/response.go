package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape returned by every endpoint.
type Envelope struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		Status: StatusSuccess,
		Data:   data,
	})
}

func ListResponse(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Results: &count,
		Data:    data,
	})
}

func TokenResponse(c *gin.Context, statusCode int, token string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Status: StatusSuccess,
		Token:  token,
		Data:   data,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	SuccessResponse(c, http.StatusCreated, data)
}

func NoContentResponse(c *gin.Context) {
	c.JSON(http.StatusNoContent, nil)
}
