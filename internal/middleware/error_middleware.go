package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// StatusFor maps an error to its HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateKey):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrReferenceNotFound, apperrors.ErrUnknownRole):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrInvalidCredentials, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes err as an error envelope and aborts the handler chain
func HandleAPIError(c *gin.Context, err error) {
	status := StatusFor(err)
	_ = c.Error(err)

	var detail *dto.ErrorDetail
	var ce *apperrors.CustomError
	switch {
	case status == http.StatusInternalServerError:
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("Unhandled error")
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	case errors.As(err, &ce):
		detail = dto.NewErrorDetail(errorCode(err, ce), ce.Error())
		if field, ok := ce.Details["field"].(string); ok {
			detail.WithField(field)
		}
		if len(ce.Details) > 0 {
			detail.WithDetails(ce.Details)
		}
	default:
		detail = dto.NewErrorDetail(defaultCode(status), err.Error())
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// errorCode keeps the token failure reason visible under the unauthenticated kind
func errorCode(err error, ce *apperrors.CustomError) dto.ErrorCode {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.ErrorCodeInvalidToken
	}
	return dto.ErrorCode(ce.Code)
}

func defaultCode(status int) dto.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return dto.ErrorCodeResourceNotFound
	case http.StatusConflict:
		return dto.ErrorCodeResourceAlreadyExists
	case http.StatusUnauthorized:
		return dto.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return dto.ErrorCodeForbidden
	default:
		return dto.ErrorCodeValidationFailed
	}
}

// HandleBindError answers a request whose body or query failed to bind
func HandleBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

var errPanic = errors.New("panic during request handling")
