package v1

import (
	"reflect"

	"github.com/ledgerline/backend/internal/types"
	ll_uuid "github.com/ledgerline/backend/internal/uuid"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/pkg/store"
	"github.com/rs/zerolog/log"
)

type URIID struct {
	ID ll_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIInvoice struct {
	URIID
	Period types.Month `uri:"period" example:"2024-06"` // Invoice period in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// engine returns a ledger working on the current database.
func engine() *ledger.Ledger {
	return ledger.New(store.New(models.DB), ledger.WithLogger(log.Logger))
}

// copyFields sets the named fields of dst to their values in src.
//
// The names are the Go field names as returned by httputil.GetBodyFields.
// Names that dst does not have are ignored.
func copyFields[T any](dst *T, src T, fields []string) {
	d := reflect.ValueOf(dst).Elem()
	s := reflect.ValueOf(src)

	for _, name := range fields {
		field := d.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		field.Set(s.FieldByName(name))
	}
}
