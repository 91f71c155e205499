package middleware

import (
	"net/http"
	"strings"

	"github.com/tc2000/fantasy/userctx"
)

// ClientIP stores the caller's IP address in the request context so audit
// entries can attribute actions even for unauthenticated requests
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := userctx.SetClientIP(r.Context(), ipAddress(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ipAddress extracts the IP address from a request, checking X-Forwarded-For first
func ipAddress(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
