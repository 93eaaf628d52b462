package router

import "errors"

var (
	// ErrNoOrigins is returned when a query has no origin stations.
	ErrNoOrigins = errors.New("router: no origin stations")

	// ErrNoDestinations is returned when a query has no destination stations.
	ErrNoDestinations = errors.New("router: no destination stations")
)
