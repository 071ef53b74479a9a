package hl7

import (
	"strings"

	"github.com/rivo/uniseg"
)

// SegmentDelimiter is the fixed, non-configurable delimiter between
// segments: a carriage return.
const SegmentDelimiter byte = 0x0D

// Default delimiter characters used when constructing a new message and
// when an MSH-2 field is too short to supply all four.
const (
	DefaultField        byte = '|'
	DefaultComponent    byte = '^'
	DefaultRepetition   byte = '~'
	DefaultEscape       byte = '\\'
	DefaultSubcomponent byte = '&'
)

// Encoding holds the five delimiter characters that define how an HL7
// message's text splits into element-tree levels, and provides the
// escape/unescape transform over reserved characters.
//
// For a parser Message, an Encoding is a read-only reflection of the
// current MSH-1/MSH-2 bytes. For a builder Message, it is the set of
// fields that MSH-1/MSH-2 are serialized from. Either way Encoding itself
// is just a value; it carries no back-reference.
type Encoding struct {
	Field        byte // MSH-1 (not repeated in the MSH-2 encoding characters)
	Component    byte // MSH-2 encoding-characters[0]
	Repetition   byte // MSH-2 encoding-characters[1]
	Escape       byte // MSH-2 encoding-characters[2]
	Subcomponent byte // MSH-2 encoding-characters[3]
}

// DefaultEncoding returns the standard HL7 delimiter set: | ^ ~ \ &.
func DefaultEncoding() Encoding {
	return Encoding{
		Field:        DefaultField,
		Component:    DefaultComponent,
		Repetition:   DefaultRepetition,
		Escape:       DefaultEscape,
		Subcomponent: DefaultSubcomponent,
	}
}

// EncodingCharacters returns the four MSH-2 characters in wire order:
// component, repetition, escape, subcomponent.
func (e Encoding) EncodingCharacters() string {
	return string([]byte{e.Component, e.Repetition, e.Escape, e.Subcomponent})
}

// ParseEncodingCharacters decodes encoding characters from an MSH-2 value.
// Missing trailing characters fall back to the matching DefaultEncoding
// value, matching the builder's "defaulting to ^~\& if shorter" behavior.
func ParseEncodingCharacters(field byte, encodingChars string) Encoding {
	enc := Encoding{
		Field:        field,
		Component:    DefaultComponent,
		Repetition:   DefaultRepetition,
		Escape:       DefaultEscape,
		Subcomponent: DefaultSubcomponent,
	}
	if len(encodingChars) > 0 {
		enc.Component = encodingChars[0]
	}
	if len(encodingChars) > 1 {
		enc.Repetition = encodingChars[1]
	}
	if len(encodingChars) > 2 {
		enc.Escape = encodingChars[2]
	}
	if len(encodingChars) > 3 {
		enc.Subcomponent = encodingChars[3]
	}
	return enc
}

// Valid reports whether the five delimiters are pairwise distinct and the
// escape character does not target itself.
func (e Encoding) Valid() bool {
	chars := []byte{SegmentDelimiter, e.Field, e.Component, e.Repetition, e.Escape, e.Subcomponent}
	for i := range chars {
		for j := i + 1; j < len(chars); j++ {
			if chars[i] == chars[j] {
				return false
			}
		}
	}
	return true
}

// escapeLetter maps a reserved delimiter byte to its escape-sequence letter.
func (e Encoding) escapeLetter(b byte) (byte, bool) {
	switch b {
	case e.Field:
		return 'F', true
	case e.Component:
		return 'S', true
	case e.Subcomponent:
		return 'T', true
	case e.Repetition:
		return 'R', true
	case e.Escape:
		return 'E', true
	default:
		return 0, false
	}
}

// unescapeLetter maps an escape-sequence letter back to the delimiter byte
// it represents.
func (e Encoding) unescapeLetter(l byte) (byte, bool) {
	switch l {
	case 'F':
		return e.Field, true
	case 'S':
		return e.Component, true
	case 'T':
		return e.Subcomponent, true
	case 'R':
		return e.Repetition, true
	case 'E':
		return e.Escape, true
	default:
		return 0, false
	}
}

// Escape replaces occurrences of the five reserved characters within text
// with the three-character escape sequence \X\ (X in {F,S,T,R,E}). It walks the
// input by grapheme cluster, rather than by byte, so a multi-byte rune
// adjacent to a reserved byte is never split mid-rune by the substitution.
//
// Escape is not idempotent: calling it twice on already-escaped text will
// escape the escape character itself. Call it exactly once, immediately
// before emission.
func (e Encoding) Escape(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if len(cluster) == 1 {
			if letter, ok := e.escapeLetter(cluster[0]); ok {
				b.WriteByte(e.Escape)
				b.WriteByte(letter)
				b.WriteByte(e.Escape)
				continue
			}
		}
		b.WriteString(cluster)
	}
	return b.String()
}

// UnEscape reverses Escape: every \X\ sequence (X one of F,S,T,R,E) is
// replaced by the delimiter it names. \.br\ passes through unchanged (a
// segment-break hint, meaningful only to renderers), and \Xhh..\ / \Zhh..\
// (hex and local-use escapes) pass through unchanged since they encode
// arbitrary bytes rather than a reserved delimiter.
//
// An escape sequence that is unterminated, or whose letter is unknown, is
// emitted literally rather than dropped.
func (e Encoding) UnEscape(text string) string {
	if text == "" || !strings.ContainsRune(text, rune(e.Escape)) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != e.Escape {
			b.WriteByte(text[i])
			i++
			continue
		}
		// Find the closing escape character.
		end := strings.IndexByte(text[i+1:], e.Escape)
		if end < 0 {
			// Unterminated: emit the rest literally.
			b.WriteString(text[i:])
			break
		}
		body := text[i+1 : i+1+end]
		if passesThrough(body) {
			b.WriteByte(e.Escape)
			b.WriteString(body)
			b.WriteByte(e.Escape)
			i += 2 + len(body)
			continue
		}
		if len(body) == 1 {
			if target, ok := e.unescapeLetter(body[0]); ok {
				b.WriteByte(target)
				i += 2 + len(body)
				continue
			}
		}
		// Unknown escape sequence: emit literally.
		b.WriteByte(e.Escape)
		b.WriteString(body)
		b.WriteByte(e.Escape)
		i += 2 + len(body)
	}
	return b.String()
}

// passesThrough reports whether an escape sequence body is one of the
// pass-through forms: a segment-break hint (.br), a hex-byte escape
// (Xhh..), or a local-use escape (Zhh..).
func passesThrough(body string) bool {
	if body == ".br" {
		return true
	}
	if len(body) >= 1 && (body[0] == 'X' || body[0] == 'Z') {
		return true
	}
	return false
}
