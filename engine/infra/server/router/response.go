package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard envelope for successful API responses.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the standard envelope for failed API responses.
type ErrorResponse struct {
	Status int        `json:"status"`
	Error  *ErrorInfo `json:"error"`
}

func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func RespondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, Response{
		Status:  http.StatusAccepted,
		Message: message,
		Data:    data,
	})
}

func RespondWithError(c *gin.Context, reqErr *RequestError) {
	c.JSON(reqErr.StatusCode, ErrorResponse{
		Status: reqErr.StatusCode,
		Error:  reqErr.GetErrorInfo(),
	})
}
