package service

import (
	"errors"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/catalog"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
)

// Kind buckets every error a service returns. Handlers map kinds to HTTP
// statuses; raw storage errors are never allowed through unclassified.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindStock
	KindDependency
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrSelectionRequired          = errors.New("product requires an attribute selection")
	ErrRepeatedAttribute          = errors.New("selection names an attribute more than once")
	ErrAttributeNotFound          = errors.New("attribute not found")
	ErrOptionNotFound             = errors.New("option not found")
	ErrOutOfStock                 = errors.New("out of stock")
	ErrDuplicateCartLine          = errors.New("item with these attributes already in cart")
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")
	ErrEmptyDetailKey             = errors.New("detail keys must not be empty")
)

// Classify maps an error to its kind. Anything unrecognized is a dependency
// failure: callers get a generic message while the cause is logged.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrSelectionRequired),
		errors.Is(err, ErrRepeatedAttribute),
		errors.Is(err, ErrAttributeNotFound),
		errors.Is(err, ErrOptionNotFound),
		errors.Is(err, ErrCancellationReasonRequired),
		errors.Is(err, ErrEmptyDetailKey),
		errors.Is(err, catalog.ErrInvalidAttributes),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, catalog.ErrGroupNotFound),
		errors.Is(err, catalog.ErrNoAttributesDefined),
		errors.Is(err, catalog.ErrNoPriceAvailable),
		errors.Is(err, domain.ErrUnknownTrackingStatus):
		return KindValidation
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrCartLineNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateCartLine),
		errors.Is(err, catalog.ErrDuplicateGroup),
		errors.Is(err, catalog.ErrDuplicateOption),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrOrderAlreadyCancelled),
		errors.Is(err, domain.ErrOrderNotCancellable),
		errors.Is(err, domain.ErrOrderNotDeletable):
		return KindConflict
	case errors.Is(err, ErrOutOfStock):
		return KindStock
	default:
		return KindDependency
	}
}
