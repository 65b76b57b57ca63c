package market

import "errors"

// Every fault is reported synchronously as one of these named conditions.
// Validation and authorization faults are raised before any mutation, state
// faults reflect the record's current rental window, and fund faults are
// propagated from the ledger with no partial mutation retained.
var (
	ErrStringTooLong         = errors.New("string too long")
	ErrInvalidRoyalty        = errors.New("invalid royalty percent")
	ErrInvalidMint           = errors.New("invalid mint")
	ErrInvalidOwner          = errors.New("invalid owner")
	ErrInvalidCollection     = errors.New("invalid collection account")
	ErrInvalidRentalDuration = errors.New("invalid rental duration")
	ErrPriceOverflow         = errors.New("rental price overflow")
	ErrNftRented             = errors.New("nft already rented")
	ErrNftNotListed          = errors.New("nft not listed")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrMissingSignature      = errors.New("missing signature")
	ErrAlreadyExists         = errors.New("record already exists")
	ErrNotFound              = errors.New("record not found")
	ErrMetadataUnavailable   = errors.New("metadata service not configured")
)
