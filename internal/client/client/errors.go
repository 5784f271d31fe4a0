package client

import "errors"

// ErrSuperseded is returned to the caller of a request that was
// cancelled because an identical request started after it.
var ErrSuperseded = errors.New("request superseded by a newer identical request")
