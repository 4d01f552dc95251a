package auth

import (
	"net/http"
)

// Chain evaluates authenticators in fixed priority order. The first
// applicable one decides: a rejection is terminal, the chain never falls
// through past a supplied credential.
type Chain struct {
	authenticators []Authenticator
}

func NewChain(authenticators ...Authenticator) Chain {
	return Chain{
		authenticators: authenticators,
	}
}

func (c Chain) Attempt(r *http.Request) (a Auth, applicable bool, err error) {
	for _, next := range c.authenticators {
		a, applicable, err = next.Attempt(r)
		if applicable || err != nil {
			return
		}
	}
	return
}
