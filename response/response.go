package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created is Success with 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthenticated",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Access denied",
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: message,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict trả về response conflict (409)
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
	})
}

// TooManyRequests trả về response khi vượt giới hạn (429)
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{
		Code: 0,
		Mess: "Too many requests, please slow down",
	})
}
