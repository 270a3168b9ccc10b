package accesspolicy

import "strings"

// Identity is the authenticated caller. It is resolved by the authentication
// layer outside this core and passed explicitly into every operation, never
// read from ambient request state.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Admin       bool   `json:"admin"`
}

// IsAuthenticated reports whether a caller is bound. A blank ID means the
// request reached the core without an authenticated principal.
func (i Identity) IsAuthenticated() bool {
	return strings.TrimSpace(i.ID) != ""
}
