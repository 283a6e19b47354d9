package httpapi

import (
	"errors"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	apperrors "github.com/bookshop-labs/go-bookshop-api/internal/shared/errors"
)

// problemFromError maps shop errors onto problem responses: absence is 404,
// a taken name is 409, violated business rules are 422, and bad input is 400.
func problemFromError(err error) (apperrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrMemberNotFound),
		errors.Is(err, application.ErrItemNotFound),
		errors.Is(err, application.ErrOrderNotFound):
		return apperrors.ErrNotFound.WithDetail(err.Error()), true

	case errors.Is(err, application.ErrDuplicateMember):
		return apperrors.ErrConflict.WithDetail(err.Error()), true

	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrDeliveryCompleted),
		errors.Is(err, domain.ErrOrderAlreadyCancelled),
		errors.Is(err, domain.ErrNoOrderLines),
		errors.Is(err, domain.ErrInvalidCount):
		return apperrors.ErrUnprocessable.WithDetail(err.Error()), true

	case errors.Is(err, domain.ErrEmptyMemberName),
		errors.Is(err, domain.ErrEmptyItemName),
		errors.Is(err, domain.ErrNegativePrice):
		return apperrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apperrors.ProblemDetail{}, false
}
