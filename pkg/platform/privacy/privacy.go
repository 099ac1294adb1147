// Package privacy provides helpers for handling personally identifiable information
// (client addresses, bank verification numbers) in logs, traces and audit events.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP truncates an IP address to remove the host-identifying portion.
// IPv4 keeps the /24 network, IPv6 keeps the /48 prefix.
//
// Returns "invalid" for unparseable IP addresses, and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// RedactBVN masks all but the last four digits of a BVN, e.g. "****5291".
func RedactBVN(bvn string) string {
	if bvn == "" {
		return ""
	}
	if len(bvn) <= 4 {
		return strings.Repeat("*", len(bvn))
	}
	return "****" + bvn[len(bvn)-4:]
}

// HashBVN returns the hex SHA-256 digest of a BVN so events and spans can be
// correlated without carrying the identifier itself.
func HashBVN(bvn string) string {
	if bvn == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(bvn))
	return hex.EncodeToString(sum[:])
}

// ShortHashBVN is HashBVN truncated to the first 8 bytes, for span attributes.
func ShortHashBVN(bvn string) string {
	h := HashBVN(bvn)
	if len(h) > 16 {
		return h[:16]
	}
	return h
}
