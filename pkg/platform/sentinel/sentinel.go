package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and upstream clients return these
// (optionally wrapped) so services can translate them into domain errors:
//   - ErrNotFound: record does not exist in the store or upstream system
//   - ErrConflict: a uniqueness guard rejected the write
//   - ErrUnavailable: upstream service or store temporarily unreachable
//   - ErrBadData: upstream answered with something that could not be decoded
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
	ErrBadData     = errors.New("bad data")
)
