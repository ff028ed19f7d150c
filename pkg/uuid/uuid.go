package uuid

import (
	"crypto/rand"
	"fmt"
	"io"
)

// UUID is a 16-byte RFC 4122 identifier.
type UUID [16]byte

// New returns a new random UUID v4.
func New() (UUID, error) {
	var u UUID
	if _, err := io.ReadFull(rand.Reader, u[:]); err != nil {
		return UUID{}, err
	}
	// version (4)
	u[6] = (u[6] & 0x0f) | 0x40
	// variant (RFC 4122)
	u[8] = (u[8] & 0x3f) | 0x80
	return u, nil
}

// NewString returns a new random UUID v4 in canonical form,
// falling back to the zero UUID if the random source fails.
// Used for request IDs where failing a request over an ID is not worth it.
func NewString() string {
	u, err := New()
	if err != nil {
		return UUID{}.String()
	}
	return u.String()
}

// String formats the UUID as XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
