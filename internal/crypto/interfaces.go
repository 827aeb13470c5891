package crypto

// Pseudonymizer turns identifying values into stable, keyed pseudonyms.
//
// The same key and value always give the same pseudonym, so replicated
// copies of one patient stay linked while the original identifier cannot be
// recovered without the key.
type Pseudonymizer interface {
	// Pseudonym returns the first n hex characters of the keyed hash of
	// value. n is clamped to the full hash length.
	Pseudonym(value string, n int) string
}
