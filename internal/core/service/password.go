package service

// PlaintextVerifier implements password checks as a byte-for-byte string
// comparison. Hash performs no cryptographic transformation at all: the
// stored value is the plaintext password. This mirrors how accounts are
// provisioned in the existing database and is kept deliberately, not as an
// oversight.
type PlaintextVerifier struct{}

func NewPlaintextVerifier() PlaintextVerifier {
	return PlaintextVerifier{}
}

// Validate reports whether candidate equals stored. Total over all string
// inputs, two empty strings compare equal.
func (PlaintextVerifier) Validate(candidate, stored string) bool {
	return candidate == stored
}

// Hash is the identity function. Downstream storage holds plaintext.
func (PlaintextVerifier) Hash(plain string) string {
	return plain
}
