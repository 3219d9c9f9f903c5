package auth

import (
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/lockup"
)

// Gate authorizes callers against the principal a given operation requires.
// Principals are opaque handles compared as capabilities; how a caller proves
// it holds one is the concern of whatever sits in front of the service.
type Gate interface {
	RequireCaller(caller, principal string) error
}

// PrincipalGate is a Gate that compares the caller handle against the
// required principal byte for byte.
type PrincipalGate struct{}

func NewPrincipalGate() *PrincipalGate {
	return &PrincipalGate{}
}

func (g *PrincipalGate) RequireCaller(caller, principal string) error {
	if caller == "" || caller != principal {
		return fmt.Errorf("%w: caller %q is not %q", lockup.ErrUnauthorized, caller, principal)
	}
	return nil
}
