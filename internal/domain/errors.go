package domain

import "errors"

// Domain errors.
var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnExists     = errors.New("column already exists")
	ErrColumnNotEmpty   = errors.New("column is not empty")
	ErrEmptyColumnID    = errors.New("column id cannot be empty")
	ErrIndexOutOfRange  = errors.New("card index out of range")
	ErrStatusMismatch   = errors.New("card status does not match its column")
	ErrDuplicateCard    = errors.New("duplicate card id")
	ErrCardNotFound     = errors.New("card not found")
	ErrPageNotFound     = errors.New("page not found")
	ErrEmptySlug        = errors.New("slug cannot be empty")
	ErrAlreadyInit      = errors.New("salesdeck already initialized")
	ErrNotInitialized   = errors.New("salesdeck not initialized (run 'salesdeck init' first)")
	ErrConfigExists     = errors.New("config file already exists")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrInvalidDocument  = errors.New("document must be a JSON object")
	ErrInvalidStatus    = errors.New("invalid page status")
	ErrNoHistory        = errors.New("board store does not keep history (set [store].type = \"git\")")

	// ErrUnchanged is returned by an Update function to leave the stored board
	// as it is. Update itself then returns nil.
	ErrUnchanged = errors.New("board unchanged")
)
