package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMalformedVerdict indicates the provider answered outside the verdict contract.
var ErrMalformedVerdict = errors.New("malformed ai verdict")
