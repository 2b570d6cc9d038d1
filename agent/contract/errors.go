package contract

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCart        = errors.New("cart is missing or invalid")
	ErrProductUnavailable = errors.New("product not found or unavailable")
	ErrCatalogUnavailable = errors.New("catalog is unreachable")
	ErrCallControl        = errors.New("call transfer failed")
)
