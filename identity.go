package hl7

import (
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
)

// identity is embedded in both ParserMessage and BuilderMessage. The key is
// generated lazily, on first observation, rather than at construction, so
// building a throwaway message never pays for a UUID it doesn't need.
type identity struct {
	key uuid.UUID
	set bool
}

func (id *identity) Key() uuid.UUID {
	if !id.set {
		id.key = uuid.New()
		id.set = true
	}
	return id.key
}

// sanitizeLineEndings normalizes both CRLF and lone LF to the HL7 segment
// delimiter (CR), per the package's line-ending sanitation rule. This is
// applied on ingest and whenever two messages are compared for equality.
func sanitizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\r")
	s = strings.ReplaceAll(s, "\n", "\r")
	return s
}

// equalMessages reports whether two messages are equal: string-equality of
// their line-ending-sanitized Value().
func equalMessages(a, b string) bool {
	return sanitizeLineEndings(a) == sanitizeLineEndings(b)
}

// Equal reports whether two elements carry the same content: their
// Value() strings compare equal after line-ending sanitation. This is a
// content comparison, independent of which representation (Cursor or
// Node) either side is backed by, and independent of Key.
func Equal(a, b Element) bool {
	return equalMessages(a.Value(), b.Value())
}

// Hash returns a content hash of e's Value(), matching Equal's notion of
// equality: Equal(a, b) implies Hash(a) == Hash(b).
func Hash(e Element) uint64 {
	return hashMessage(e.Value())
}

// hashMessage returns the FNV-1a hash of a message's line-ending-sanitized
// Value(), matching the equality definition above. FNV is used rather than
// a cryptographic hash because this is an in-memory map/set key, not a
// security boundary, and the standard library already supplies it — no
// pack dependency offers content hashing that would be proportionate to
// pull in for this single internal use.
func hashMessage(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sanitizeLineEndings(s)))
	return h.Sum64()
}
