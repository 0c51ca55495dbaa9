package utils

import (
	"net/http"
	"strings"
)

// ExtractIP extracts the client IP address from the request
// Handles X-Forwarded-For header for proxied requests
func ExtractIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxied requests)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// PathSegment returns the segment of the URL path after the given prefix,
// trimmed of any trailing path, query, or fragment.
// PathSegment("/track/abc?x=1", "/track/") == "abc".
func PathSegment(path, prefix string) string {
	seg := strings.TrimPrefix(path, prefix)
	seg = strings.Trim(seg, "/")
	if idx := strings.IndexByte(seg, '/'); idx != -1 {
		seg = seg[:idx]
	}
	if idx := strings.IndexByte(seg, '?'); idx != -1 {
		seg = seg[:idx]
	}
	if idx := strings.IndexByte(seg, '#'); idx != -1 {
		seg = seg[:idx]
	}
	return seg
}
