package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Invalid person category",
		http.StatusBadRequest,
	)

	ErrInvalidCapacity = New(
		"INVALID_CAPACITY",
		"Capacity per center must be positive",
		http.StatusBadRequest,
	)

	ErrRoutingUnavailable = New(
		"ROUTING_UNAVAILABLE",
		"Routing service unavailable",
		http.StatusBadGateway,
	)

	ErrRequestCanceled = New(
		"REQUEST_CANCELED",
		"Computation was canceled",
		http.StatusRequestTimeout,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
