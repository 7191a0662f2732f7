package controllers

import (
	"fmt"
	"strconv"
	"time"

	"hotelsite/errors"
	"hotelsite/models"
	"hotelsite/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps application errors onto HTTP statuses.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		response.ServerError(c)
		return
	}
	switch appErr.Code {
	case errors.ErrCodeValidation:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeNotFound:
		response.NotFound(c, appErr.Message)
	case errors.ErrCodeConflict:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken:
		response.Unauthorized(c)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		response.ServerError(c)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	return parseID(c.Param(name), name)
}

func parseID(value, name string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Validation(fmt.Sprintf("invalid %s", name), errors.ErrInvalidFormat)
	}
	return uint(id), nil
}

// parseDate parses an optional YYYY-MM-DD value; "" yields nil.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := models.ParseDate(value)
	if err != nil {
		return nil, errors.Validation(fmt.Sprintf("%s must be YYYY-MM-DD", field), errors.ErrInvalidFormat)
	}
	return &t, nil
}

func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	return parseDate(c.Query(key), key)
}

// parsePaging reads zero-based page and limit query parameters.
func parsePaging(c *gin.Context) (int, int) {
	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) []T {
	start := page * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func bindError(err error) error {
	return errors.Validation("invalid request body: "+err.Error(), errors.ErrInvalidInput)
}
