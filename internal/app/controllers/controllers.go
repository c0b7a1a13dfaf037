// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/middleware"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

// parseID reads a positive int64 path parameter. On failure the error response is already
// written.
func parseID(ctx *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(fmt.Sprintf("%s must be a positive integer", param)))
		return 0, false
	}
	return id, true
}

// keyword reads the required search keyword
func keyword(ctx *gin.Context) (string, bool) {
	kw := strings.TrimSpace(ctx.Query("keyword"))
	if kw == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("keyword is required"))
		return "", false
	}
	return kw, true
}

func ok(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(data, message))
}

func created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(data, message))
}
