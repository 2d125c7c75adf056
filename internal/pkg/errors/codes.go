package errors

import "net/http"

var (
	ErrBoundaryNotFound = New(
		"BOUNDARY_NOT_FOUND",
		"Boundary not found",
		http.StatusNotFound,
	)

	ErrProgressNotFound = New(
		"PROGRESS_NOT_FOUND",
		"No import progress recorded for country",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidCountryCode = New(
		"INVALID_COUNTRY_CODE",
		"Invalid country code (expected ISO3)",
		http.StatusBadRequest,
	)

	ErrInvalidWikidataID = New(
		"INVALID_WIKIDATA_ID",
		"Invalid wikidata id (expected Q<digits>)",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
