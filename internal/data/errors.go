package data

import (
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// Shared data-layer errors. Everything returned by a repository is an *AppError
// or passes through apperrors.MapDBError.
var (
	errNilRequest    = apperrors.Validation("request is required")
	errIDRequired    = apperrors.Validation("id is required")
	errNoChanges     = apperrors.Validation("no fields to update")
	errUnknownColumn = apperrors.Internal("unknown column in update")
)
