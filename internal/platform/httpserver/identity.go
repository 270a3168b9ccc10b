package httpserver

import (
	"net/http"
	"strings"

	accesspolicy "billcore/contexts/identity-access/access-policy"
)

// resolveIdentity binds the caller from the trusted identity headers set by
// the outer auth layer. An absent X-User-Id yields the zero identity, which
// every operation rejects as unauthenticated.
func resolveIdentity(r *http.Request) accesspolicy.Identity {
	return accesspolicy.Identity{
		ID:          strings.TrimSpace(r.Header.Get("X-User-Id")),
		DisplayName: strings.TrimSpace(r.Header.Get("X-User-Name")),
		Email:       strings.TrimSpace(r.Header.Get("X-User-Email")),
		Admin:       strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "admin"),
	}
}
