package v1

import (
	"errors"
	"net/http"

	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindInvalidArgument:
		return http.StatusBadRequest
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindInvariantViolation:
		return http.StatusConflict
	case ledger.KindStoreUnavailable:
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrResourceInUse) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
