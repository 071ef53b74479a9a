package hl7

import (
	"strings"
)

// ParserMessage is the string-backed, lazy representation of a parsed HL7
// message: the root of a Cursor tree. It owns the single backing string
// every descendant Cursor slices into; no sub-element's text is ever
// copied out until Value() is actually called on it.
type ParserMessage struct {
	identity

	data string
	enc  Encoding

	children map[int]*Cursor
}

var _ Element = (*ParserMessage)(nil)
var _ container = (*ParserMessage)(nil)
var _ ranger = (*ParserMessage)(nil)

// Parse parses s as an HL7 message. Line endings are normalized (CRLF and
// lone LF both become the segment delimiter, CR) before any structural
// check runs. s must be non-empty, long enough to contain MSH-1 and the
// four MSH-2 encoding characters, and begin with the literal segment type
// MSH.
func Parse(s string, opts ...Option) (*ParserMessage, error) {
	if s == "" {
		return nil, ErrMessageDataMustNotBeNull
	}
	data := sanitizeLineEndings(s)
	if len(data) < 8 {
		return nil, ErrMessageDataIsTooShort
	}
	if !strings.HasPrefix(data, "MSH") {
		return nil, ErrMessageDataMustStartWithMSH
	}
	field := data[3]
	enc := ParseEncodingCharacters(field, data[4:8])

	m := &ParserMessage{data: data, enc: enc}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *ParserMessage) Level() Level  { return LevelMessage }
func (m *ParserMessage) Index() int    { return 0 }
func (m *ParserMessage) Delimiter() byte {
	return SegmentDelimiter
}
func (m *ParserMessage) IsAbsent() bool { return false }

func (m *ParserMessage) ownRange() (int, int, bool) {
	return 0, len(m.data), true
}

func (m *ParserMessage) Value() string { return m.data }

func (m *ParserMessage) ValueCount() int {
	return childCount(m.data, LevelMessage, 0, len(m.data), m.enc)
}

func (m *ParserMessage) Values() []string {
	return containerValues(m.data, LevelMessage, 0, len(m.data), true, m.enc)
}

func (m *ParserMessage) Child(i int) Element {
	if m.children == nil {
		m.children = make(map[int]*Cursor)
	}
	if cached, ok := m.children[i]; ok {
		return cached
	}
	child := &Cursor{msg: m, parent: m, level: LevelSegment, index: i}
	m.children[i] = child
	return child
}

func (m *ParserMessage) Parent() Element { return nil }

func (m *ParserMessage) Clone() Element {
	return &ParserMessage{data: m.data, enc: m.enc}
}

func (m *ParserMessage) GetValue(path ...int) string    { return descendValue(m, path) }
func (m *ParserMessage) GetValues(path ...int) []string { return descendValues(m, path) }

func (m *ParserMessage) SetValue(v *string) error {
	if v == nil {
		return newError(ErrCodeElementDeleteForbidden, "the message itself cannot be deleted")
	}
	data := sanitizeLineEndings(*v)
	if len(data) >= 8 && strings.HasPrefix(data, "MSH") {
		m.enc = ParseEncodingCharacters(data[3], data[4:8])
	}
	m.data = data
	return nil
}

func (m *ParserMessage) SetValues(values []string) error {
	body := rebuildBody(LevelMessage, "", values, m.enc)
	m.data = body
	return nil
}

func (m *ParserMessage) isProtected(index int) bool {
	return isProtectedIndex(LevelMessage, index, false)
}

func (m *ParserMessage) isFixedField(index int) bool {
	return isFixedFieldIndex(LevelMessage, index, false)
}

func (m *ParserMessage) insertChild(index int, value string) error {
	if index < 1 {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d must be greater than zero", index)
	}
	values := m.Values()
	if index > len(values) {
		for len(values) < index-1 {
			values = append(values, "")
		}
		values = append(values, value)
	} else {
		values = append(values[:index-1:index-1], append([]string{value}, values[index-1:]...)...)
	}
	return m.SetValues(values)
}

func (m *ParserMessage) deleteChild(index int) error {
	values := m.Values()
	if index < 1 || index > len(values) {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d is out of range", index)
	}
	values = append(values[:index-1], values[index:]...)
	return m.SetValues(values)
}

// Encoding returns the current delimiter set, derived from the message's
// MSH-1/MSH-2 bytes at the time of the last structural change.
func (m *ParserMessage) Encoding() Encoding { return m.enc }

// Segments returns every segment in message order.
func (m *ParserMessage) Segments() []*Cursor {
	count := m.ValueCount()
	segs := make([]*Cursor, count)
	for i := 1; i <= count; i++ {
		segs[i-1] = m.Child(i).(*Cursor)
	}
	return segs
}

// SegmentsOfType returns every segment whose type code equals typeCode, in
// message order.
func (m *ParserMessage) SegmentsOfType(typeCode string) []*Cursor {
	var out []*Cursor
	for _, seg := range m.Segments() {
		if seg.Child(0).Value() == typeCode {
			out = append(out, seg)
		}
	}
	return out
}

// Validate reports whether the message is structurally sound: it begins
// with MSH, its encoding characters are pairwise distinct, and it has at
// least one segment. Validate never panics and never returns an error;
// callers that need to know why should inspect the message directly.
func (m *ParserMessage) Validate() bool {
	if !strings.HasPrefix(m.data, "MSH") {
		return false
	}
	if !m.enc.Valid() {
		return false
	}
	return m.ValueCount() > 0
}

// Escape runs the message's current Encoding.Escape over text.
func (m *ParserMessage) Escape(text string) string { return m.enc.Escape(text) }

// UnEscape runs the message's current Encoding.UnEscape over text.
func (m *ParserMessage) UnEscape(text string) string { return m.enc.UnEscape(text) }

// replace overwrites data[start:end] with body.
func (m *ParserMessage) replace(start, end int, body string) {
	m.data = m.data[:start] + body + m.data[end:]
}

// setFieldDelimiter rewrites MSH-1: every occurrence of the current field
// delimiter throughout the whole message becomes newField, matching the
// package's invariant that MSH-1 and the field delimiter are the same
// character everywhere, not just at MSH-1's own position.
func (m *ParserMessage) setFieldDelimiter(newField byte) error {
	old := m.enc.Field
	if old == newField {
		return nil
	}
	candidate := m.enc
	candidate.Field = newField
	if !candidate.Valid() {
		return newError(ErrCodeElementDeleteForbidden, "field delimiter %q collides with another reserved character", newField)
	}
	m.data = strings.ReplaceAll(m.data, string(old), string(newField))
	m.enc.Field = newField
	return nil
}

// setEncodingCharacters rewrites MSH-2: the component, repetition, escape
// and subcomponent delimiters are each substituted throughout the whole
// message in a single pass, so that a character used as (say) the new
// component delimiter cannot be clobbered by a later substitution that
// happens to target the byte it was just rewritten to.
func (m *ParserMessage) setEncodingCharacters(newEC string) error {
	if len(newEC) != 4 {
		return newError(ErrCodeElementDeleteForbidden, "MSH-2 must be exactly four characters, got %d", len(newEC))
	}
	newEnc := ParseEncodingCharacters(m.enc.Field, newEC)
	if !newEnc.Valid() {
		return newError(ErrCodeElementDeleteForbidden, "MSH-2 %q is not pairwise distinct from the other delimiters", newEC)
	}

	var mapping [256]byte
	var touched [256]bool
	pairs := [4][2]byte{
		{m.enc.Component, newEnc.Component},
		{m.enc.Repetition, newEnc.Repetition},
		{m.enc.Escape, newEnc.Escape},
		{m.enc.Subcomponent, newEnc.Subcomponent},
	}
	for _, p := range pairs {
		mapping[p[0]] = p[1]
		touched[p[0]] = true
	}

	var b strings.Builder
	b.Grow(len(m.data))
	for i := 0; i < len(m.data); i++ {
		ch := m.data[i]
		if touched[ch] {
			b.WriteByte(mapping[ch])
		} else {
			b.WriteByte(ch)
		}
	}
	m.data = b.String()
	m.enc = newEnc
	return nil
}
