package service

import (
	"context"

	"cardlink/internal/domain/entity"
)

// LocationHints carries request-derived fallback signals used when the IP
// cannot be resolved externally (local/private addresses, provider outages).
type LocationHints struct {
	Timezone       string // e.g. "Asia/Dhaka", from the X-Timezone header.
	AcceptLanguage string // e.g. "bn-BD,bn;q=0.9", from Accept-Language.
}

// LocationResolver resolves an IP address to a coarse geographic location.
//
// Resolve never returns an error: on timeout, rate limiting, or an invalid IP
// it falls back to header-derived hints or the configured default location, so
// callers can always treat the result as present.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string, hints LocationHints) entity.GeoLocation

	// Fallback returns the deterministic default location used when nothing
	// better is known.
	Fallback() entity.GeoLocation
}
