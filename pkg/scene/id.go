package scene

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ElementID is a content-addressed identifier derived from an element's path
// (its kind and name). The same scene text always yields the same IDs.
type ElementID [blake2b.Size256]byte

// ZeroID is the unset ElementID.
var ZeroID ElementID

// NewElementID hashes path into an ElementID.
func NewElementID(path string) ElementID {
	return ElementID(blake2b.Sum256([]byte(path)))
}

// IsZero reports whether id is unset.
func (id ElementID) IsZero() bool { return id == ZeroID }

func (id ElementID) String() string { return hex.EncodeToString(id[:]) }

// Short returns the first 8 hex digits, for messages.
func (id ElementID) Short() string { return hex.EncodeToString(id[:4]) }

// MarshalText encodes the ID as hex so it can key JSON maps.
func (id ElementID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a hex ID.
func (id *ElementID) UnmarshalText(b []byte) error {
	if hex.DecodedLen(len(b)) != len(id) {
		return fmt.Errorf("scene: element id %q has wrong length", b)
	}
	_, err := hex.Decode(id[:], b)
	return err
}
