package client

import "errors"

var (
	// ErrClientNotFound covers both unknown IDs and unknown access
	// tokens. Public resolution deliberately returns the same error for
	// malformed and absent tokens.
	ErrClientNotFound = errors.New("client not found")
)
