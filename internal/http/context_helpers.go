package httpx

import (
	"context"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across packages.
type principalKey struct{}

type principalValue struct {
	principal *domainauth.Principal
	proof     domainauth.ProofKind
}

// SetPrincipalInContext returns a child context that carries the resolved principal
// and the proof that produced it. If p is nil, the original ctx is returned unchanged.
func SetPrincipalInContext(ctx context.Context, p *domainauth.Principal, proof domainauth.ProofKind) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, principalValue{principal: p, proof: proof})
}

// PrincipalFromContext returns the principal placed by RequirePrincipal or OptionalPrincipal.
func PrincipalFromContext(ctx context.Context) (*domainauth.Principal, bool) {
	v, ok := ctx.Value(principalKey{}).(principalValue)
	if !ok || v.principal == nil {
		return nil, false
	}
	return v.principal, true
}

// ProofFromContext returns which proof authenticated the request, or ProofNone.
func ProofFromContext(ctx context.Context) domainauth.ProofKind {
	if v, ok := ctx.Value(principalKey{}).(principalValue); ok {
		return v.proof
	}
	return domainauth.ProofNone
}
