package hl7

import "strings"

// canonicalEmptyMSH seeds every Build() call: a minimal, valid MSH segment
// with the standard delimiter set and no further fields populated.
const canonicalEmptyMSH = "MSH|^~\\&|"

// BuilderMessage is the Node-backed representation of a message: built up
// field by field rather than parsed from a complete wire string, though
// BuildFrom accepts one as a starting point.
type BuilderMessage struct {
	identity

	enc          Encoding
	value        string // authoritative only while children == nil
	children     map[int]*Node
	capacityHint int
}

var _ Element = (*BuilderMessage)(nil)
var _ container = (*BuilderMessage)(nil)

// Build returns a new message seeded with the canonical empty MSH
// (MSH|^~\&|), ready for fluent population via SetFields / AddSegment.
func Build(opts ...BuilderOption) *BuilderMessage {
	return newBuilderMessage(canonicalEmptyMSH, opts)
}

// BuildFrom returns a new message seeded from s. The text is kept as is and
// split into Nodes lazily, the first time a segment is accessed. s is subject
// to the same structural checks as Parse: non-empty, long enough to carry
// MSH-1/MSH-2, and MSH-prefixed.
func BuildFrom(s string, opts ...BuilderOption) (*BuilderMessage, error) {
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
	return newBuilderMessage(data, opts), nil
}

func newBuilderMessage(data string, opts []BuilderOption) *BuilderMessage {
	enc := ParseEncodingCharacters(data[3], data[4:8])
	m := &BuilderMessage{value: data, enc: enc}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *BuilderMessage) Level() Level    { return LevelMessage }
func (m *BuilderMessage) Index() int      { return 0 }
func (m *BuilderMessage) Delimiter() byte { return SegmentDelimiter }
func (m *BuilderMessage) IsAbsent() bool  { return false }

func (m *BuilderMessage) materialize() {
	if m.children != nil {
		return
	}
	pieces := splitPreserveEmpty(m.value, SegmentDelimiter)
	size := len(pieces)
	if m.capacityHint > size {
		size = m.capacityHint
	}
	m.children = make(map[int]*Node, size)
	for i, v := range pieces {
		m.children[i+1] = &Node{msg: m, parent: m, level: LevelSegment, index: i + 1, value: v}
	}
}

func (m *BuilderMessage) materializeAll() {
	m.materialize()
	for _, c := range m.children {
		c.materializeAll()
	}
}

func (m *BuilderMessage) gatherValues() []string {
	max := 0
	for k := range m.children {
		if k > max {
			max = k
		}
	}
	values := make([]string, max)
	for i := 1; i <= max; i++ {
		if c, ok := m.children[i]; ok {
			values[i-1] = c.Value()
		}
	}
	return values
}

func (m *BuilderMessage) Value() string {
	if m.children == nil {
		return m.value
	}
	return rebuildBody(LevelMessage, "", m.gatherValues(), m.enc)
}

func (m *BuilderMessage) ValueCount() int {
	if m.children == nil {
		return childCount(m.value, LevelMessage, 0, len(m.value), m.enc)
	}
	max := 0
	for k := range m.children {
		if k > max {
			max = k
		}
	}
	return max
}

func (m *BuilderMessage) Values() []string {
	if m.children == nil {
		return containerValues(m.value, LevelMessage, 0, len(m.value), true, m.enc)
	}
	return m.gatherValues()
}

// Child returns the materialized segment at index i, or — when i is beyond
// the current ValueCount — a fresh, uncached placeholder. Reading Child(i)
// must never grow ValueCount() as a side effect; only a subsequent write
// through the placeholder (SetValue, SetFields) does that, via growAndSet.
func (m *BuilderMessage) Child(i int) Element {
	m.materialize()
	if cached, ok := m.children[i]; ok {
		return cached
	}
	return &Node{msg: m, parent: m, level: LevelSegment, index: i}
}

func (m *BuilderMessage) Parent() Element { return nil }

func (m *BuilderMessage) Clone() Element {
	clone := &BuilderMessage{value: m.value, enc: m.enc}
	if m.children != nil {
		clone.children = make(map[int]*Node, len(m.children))
		for k, c := range m.children {
			clone.children[k] = cloneNodeInto(clone, clone, c)
		}
	}
	return clone
}

func (m *BuilderMessage) GetValue(path ...int) string    { return descendValue(m, path) }
func (m *BuilderMessage) GetValues(path ...int) []string { return descendValues(m, path) }

func (m *BuilderMessage) SetValue(v *string) error {
	if v == nil {
		return newError(ErrCodeElementDeleteForbidden, "the message itself cannot be deleted")
	}
	m.value = sanitizeLineEndings(*v)
	m.children = nil
	if len(m.value) >= 8 && strings.HasPrefix(m.value, "MSH") {
		m.enc = ParseEncodingCharacters(m.value[3], m.value[4:8])
	}
	return nil
}

func (m *BuilderMessage) SetValues(values []string) error {
	m.children = make(map[int]*Node, len(values))
	for i, v := range values {
		m.children[i+1] = &Node{msg: m, parent: m, level: LevelSegment, index: i + 1, value: v}
	}
	return nil
}

func (m *BuilderMessage) isProtected(index int) bool {
	return isProtectedIndex(LevelMessage, index, false)
}

func (m *BuilderMessage) isFixedField(index int) bool {
	return isFixedFieldIndex(LevelMessage, index, false)
}

func (m *BuilderMessage) insertChild(index int, value string) error {
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

func (m *BuilderMessage) deleteChild(index int) error {
	values := m.Values()
	if index < 1 || index > len(values) {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d is out of range", index)
	}
	values = append(values[:index-1], values[index:]...)
	return m.SetValues(values)
}

// Encoding returns the message's current delimiter set.
func (m *BuilderMessage) Encoding() Encoding { return m.enc }

// Segments returns every segment in message order.
func (m *BuilderMessage) Segments() []*Node {
	count := m.ValueCount()
	segs := make([]*Node, count)
	for i := 1; i <= count; i++ {
		segs[i-1] = m.Child(i).(*Node)
	}
	return segs
}

// SegmentsOfType returns every segment whose type code equals typeCode, in
// message order.
func (m *BuilderMessage) SegmentsOfType(typeCode string) []*Node {
	var out []*Node
	for _, seg := range m.Segments() {
		if seg.Child(0).Value() == typeCode {
			out = append(out, seg)
		}
	}
	return out
}

// Validate reports whether the message is structurally sound.
func (m *BuilderMessage) Validate() bool {
	if !strings.HasPrefix(m.Value(), "MSH") {
		return false
	}
	if !m.enc.Valid() {
		return false
	}
	return m.ValueCount() > 0
}

// Escape runs the message's current Encoding.Escape over text.
func (m *BuilderMessage) Escape(text string) string { return m.enc.Escape(text) }

// UnEscape runs the message's current Encoding.UnEscape over text.
func (m *BuilderMessage) UnEscape(text string) string { return m.enc.UnEscape(text) }

// AddSegment appends a new segment built from typeCode and fields (field 1
// first) and returns the message for chaining.
func (m *BuilderMessage) AddSegment(typeCode string, fields ...string) *BuilderMessage {
	idx := m.ValueCount() + 1
	return m.SetFields(idx, append([]string{typeCode}, fields...)...)
}

// SetFields sets segmentIndex's type code (values[0]) and its fields
// (values[1:], field 1 first), creating the segment if it does not yet
// exist, and growing the message with blank segments in between if
// segmentIndex lies beyond the current ValueCount. It returns the message
// for chaining.
func (m *BuilderMessage) SetFields(segmentIndex int, values ...string) *BuilderMessage {
	typeCode := ""
	var fields []string
	if len(values) > 0 {
		typeCode = upperASCII(values[0])
	}
	if len(values) > 1 {
		fields = values[1:]
	}
	_ = growAndSet(m, segmentIndex, joinSegmentString(typeCode, fields, m.enc))
	return m
}

// setFieldDelimiter rewrites MSH-1 for the whole message. Every node is
// first fully materialized under the current delimiter, so that nodes
// never touched since BuildFrom still split correctly before the
// delimiter they were written with disappears.
func (m *BuilderMessage) setFieldDelimiter(newField byte) error {
	old := m.enc.Field
	if old == newField {
		return nil
	}
	candidate := m.enc
	candidate.Field = newField
	if !candidate.Valid() {
		return newError(ErrCodeElementDeleteForbidden, "field delimiter %q collides with another reserved character", newField)
	}
	m.materializeAll()
	m.enc.Field = newField
	if msh, ok := m.children[1]; ok {
		if f1, ok := msh.children[1]; ok {
			f1.value = string(newField)
			f1.children = nil
		}
	}
	return nil
}

// setEncodingCharacters rewrites MSH-2 for the whole message, with the
// same eager-materialize-first discipline as setFieldDelimiter.
func (m *BuilderMessage) setEncodingCharacters(newEC string) error {
	if len(newEC) != 4 {
		return newError(ErrCodeElementDeleteForbidden, "MSH-2 must be exactly four characters, got %d", len(newEC))
	}
	newEnc := ParseEncodingCharacters(m.enc.Field, newEC)
	if !newEnc.Valid() {
		return newError(ErrCodeElementDeleteForbidden, "MSH-2 %q is not pairwise distinct from the other delimiters", newEC)
	}
	m.materializeAll()
	m.enc = newEnc
	if msh, ok := m.children[1]; ok {
		if f2, ok := msh.children[2]; ok {
			f2.value = newEC
			f2.children = nil
		}
	}
	return nil
}
