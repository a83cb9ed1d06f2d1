package repository

import "errors"

// ErrInsufficientStock is returned by ItemRepository.DeductStock when the
// item's stock is below the requested quantity. The caller wraps it with the
// item name for the client-facing message.
var ErrInsufficientStock = errors.New("insufficient stock")
