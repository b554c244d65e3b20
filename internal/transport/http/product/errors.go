package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// ErrorResponse is the uniform error body. Code carries the stable
// machine-readable error code for clients that dispatch on it.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleError translates domain errors into HTTP status codes by kind.
// Unknown errors become 500 without leaking details.
func handleError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		c.JSON(statusForKind(de.Kind), ErrorResponse{Error: de.Message, Code: de.Code})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindGone:
		return http.StatusGone
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalidState, domain.KindReferenceInactive:
		return http.StatusUnprocessableEntity
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
