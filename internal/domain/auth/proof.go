package auth

// ProofKind tags which identity proof a request carried.
type ProofKind string

const (
	ProofNone      ProofKind = "none"
	ProofFederated ProofKind = "federated"
	ProofToken     ProofKind = "token"
)

// ProofAttempt is the set of identity proofs extracted from one request.
// Either field may be empty; both may be present.
type ProofAttempt struct {
	SessionID string // federated session cookie value
	Token     string // signed auth-token cookie value
}

// Kinds lists the proofs present, in evaluation order (federated first).
func (p ProofAttempt) Kinds() []ProofKind {
	kinds := make([]ProofKind, 0, 2)
	if p.SessionID != "" {
		kinds = append(kinds, ProofFederated)
	}
	if p.Token != "" {
		kinds = append(kinds, ProofToken)
	}
	return kinds
}

// Empty reports whether no proof was presented.
func (p ProofAttempt) Empty() bool {
	return p.SessionID == "" && p.Token == ""
}

// Failure explains why a resolution produced no principal.
type Failure string

const (
	// FailureNone means no proof was presented at all.
	FailureNone Failure = "none"
	// FailureInvalidProof means a proof was presented but rejected (expired, malformed, revoked, unknown user).
	FailureInvalidProof Failure = "invalid_proof"
	// FailureStoreUnavailable means a proof could not be checked because a store was unreachable.
	FailureStoreUnavailable Failure = "store_unavailable"
)

// Resolution is the outcome of reconciling a ProofAttempt.
// Exactly one of Principal or Failure is meaningful.
type Resolution struct {
	Principal *Principal
	Proof     ProofKind // proof that produced Principal
	Failure   Failure   // set when Principal is nil
	Cause     error     // underlying cause for logging; never shown to clients
}

// Authenticated reports whether the resolution produced a principal.
func (r Resolution) Authenticated() bool {
	return r.Principal != nil
}
