// Package regions maps deployment region tokens to regional store connections.
// Tenant sibling entities (warehouses, customers, users, entity types) may live
// in a per-region store; callers pass the deployment token they received and the
// router hands back repositories bound to the right connection.
package regions

import (
	"errors"
	"strings"
)

// Store keys for the configured regional databases.
const (
	KeyUSEast1      = "usEast1"
	KeyAPSoutheast1 = "apSoutheast1"
)

var (
	// ErrRegionUnsupported means the token resolved to a region with no
	// configured store.
	ErrRegionUnsupported = errors.New("region not supported")

	// ErrRegionUnreachable means the region is configured but its store could
	// not be reached.
	ErrRegionUnreachable = errors.New("regional store unreachable")
)

// Resolve normalizes a deployment region token to its canonical store key.
// Matching is case-insensitive; "apse-southeast-1" is a legacy alias still
// emitted by older deployment tooling. Unknown tokens pass through lower-cased
// and are rejected by the router when no store is configured for them.
func Resolve(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "us-east-1":
		return KeyUSEast1
	case "ap-southeast-1", "apse-southeast-1":
		return KeyAPSoutheast1
	default:
		return strings.ToLower(strings.TrimSpace(token))
	}
}
