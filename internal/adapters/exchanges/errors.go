package exchanges

import "errors"

var (
	// ErrNotSupported is returned when the exchange does not support the requested feature.
	ErrNotSupported = errors.New("operation not supported by exchange")

	// ErrInvalidRequest indicates validation failures before hitting the exchange API.
	ErrInvalidRequest = errors.New("invalid exchange request")

	// ErrCatalogNotLoaded indicates a catalog-dependent operation ran before any load.
	ErrCatalogNotLoaded = errors.New("market catalog not loaded")
)
