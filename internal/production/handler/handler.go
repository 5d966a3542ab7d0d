package handler

import (
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/service"
	"github.com/gin-gonic/gin"
)

// Handlers is the production module handler set
type Handlers struct {
	Series *SeriesHandler
	Video  *VideoHandler
}

// NewHandlers creates the production module handler set
func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Series: NewSeriesHandler(svcs.Series),
		Video:  NewVideoHandler(svcs.Video),
	}
}

// === Response helpers, shared envelope across all modules ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items interface{} `json:"items"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}
