package hl7

import "fmt"

// Node is the builder representation of a tree element. Unlike a Cursor,
// a Node never re-slices a shared buffer: the first time any child of a
// Node is touched, the node splits its current text once and keeps the
// result as a sparse map of independent child Nodes from then on. Value()
// on a materialized Node always re-joins its current children, so edits
// made anywhere below immediately show up the next time an ancestor's
// Value() is read — the same "re-serialize on read" contract a Cursor
// gives, but backed by real node objects rather than string offsets.
type Node struct {
	msg    *BuilderMessage
	parent Element
	level  Level
	index  int

	value    string // authoritative only while children == nil
	children map[int]*Node
}

var _ Element = (*Node)(nil)
var _ container = (*Node)(nil)

func (n *Node) Level() Level { return n.level }
func (n *Node) Index() int   { return n.index }

func (n *Node) Delimiter() byte {
	return n.level.Delimiter(n.msg.enc)
}

func (n *Node) IsAbsent() bool {
	if n.parent == nil {
		return false
	}
	return n.index > n.parent.ValueCount()
}

// materialize splits the node's current raw text into real child Nodes,
// a no-op once already done. A Segment's type code becomes child 0.
func (n *Node) materialize() {
	if n.children != nil {
		return
	}
	n.children = make(map[int]*Node)
	if n.level.IsLeaf() {
		return
	}
	enc := n.msg.enc
	if n.level == LevelSegment {
		tc := typeCodeOf(n.value, 0, len(n.value))
		n.children[0] = &Node{msg: n.msg, parent: n, level: LevelField, index: 0, value: tc}
		for i, v := range segmentFieldsString(n.value, tc, enc) {
			n.children[i+1] = &Node{msg: n.msg, parent: n, level: LevelField, index: i + 1, value: v}
		}
		return
	}
	delim := n.level.Delimiter(enc)
	for i, v := range splitPreserveEmpty(n.value, delim) {
		n.children[i+1] = &Node{msg: n.msg, parent: n, level: n.level.Child(), index: i + 1, value: v}
	}
}

// materializeAll recursively materializes this node and every descendant,
// used before a message-wide delimiter change so every node's original
// text is split under the delimiter that was actually used to write it.
func (n *Node) materializeAll() {
	n.materialize()
	for _, c := range n.children {
		c.materializeAll()
	}
}

func (n *Node) gatherValues() []string {
	max := 0
	for k := range n.children {
		if k > max {
			max = k
		}
	}
	values := make([]string, max)
	for i := 1; i <= max; i++ {
		if c, ok := n.children[i]; ok {
			values[i-1] = c.Value()
		}
	}
	return values
}

func (n *Node) typeCodeValue() string {
	if n.children != nil {
		if c, ok := n.children[0]; ok {
			return c.Value()
		}
		return ""
	}
	return typeCodeOf(n.value, 0, len(n.value))
}

func (n *Node) Value() string {
	if n.level.IsLeaf() || n.children == nil {
		return n.value
	}
	return rebuildBody(n.level, n.typeCodeValue(), n.gatherValues(), n.msg.enc)
}

func (n *Node) ValueCount() int {
	if n.level.IsLeaf() {
		return 0
	}
	if n.children == nil {
		return childCount(n.value, n.level, 0, len(n.value), n.msg.enc)
	}
	max := 0
	for k := range n.children {
		if k > max {
			max = k
		}
	}
	return max
}

func (n *Node) Values() []string {
	if n.level.IsLeaf() {
		return nil
	}
	if n.children == nil {
		return containerValues(n.value, n.level, 0, len(n.value), true, n.msg.enc)
	}
	return n.gatherValues()
}

// Child returns the materialized child at index i, or — when i is beyond
// the current ValueCount — a fresh, uncached placeholder. A placeholder is
// deliberately not inserted into n.children: merely reading Child(i) must
// never change ValueCount() or Value(). Writing through a placeholder
// (SetValue) grows the real children via growAndSet instead.
func (n *Node) Child(i int) Element {
	n.materialize()
	if cached, ok := n.children[i]; ok {
		return cached
	}
	return &Node{msg: n.msg, parent: n, level: n.level.Child(), index: i}
}

func (n *Node) Parent() Element { return n.parent }

func (n *Node) Clone() Element {
	detached := &BuilderMessage{enc: n.msg.enc}
	return cloneNodeInto(detached, nil, n)
}

func cloneNodeInto(msg *BuilderMessage, parent Element, src *Node) *Node {
	clone := &Node{msg: msg, parent: parent, level: src.level, index: src.index, value: src.value}
	if src.children != nil {
		clone.children = make(map[int]*Node, len(src.children))
		for k, c := range src.children {
			clone.children[k] = cloneNodeInto(msg, clone, c)
		}
	}
	return clone
}

func (n *Node) GetValue(path ...int) string    { return descendValue(n, path) }
func (n *Node) GetValues(path ...int) []string { return descendValues(n, path) }

func (n *Node) isMSHField() bool {
	seg, ok := n.parent.(*Node)
	if !ok || seg.level != LevelSegment {
		return false
	}
	return n.level == LevelField && (n.index == 1 || n.index == 2) && seg.typeCodeValue() == "MSH"
}

func (n *Node) SetValue(v *string) error {
	if v == nil {
		return Delete(n)
	}
	if n.level == LevelField && n.index == 0 {
		if seg, ok := n.parent.(*Node); ok && seg.level == LevelSegment {
			if len(*v) != 3 {
				return fmt.Errorf("hl7: segment type code must be exactly 3 characters, got %q", *v)
			}
			n.value = upperASCII(*v)
			n.children = nil
			return nil
		}
	}
	if n.isMSHField() {
		if n.index == 1 {
			if len(*v) != 1 {
				return fmt.Errorf("hl7: MSH-1 must be exactly one character, got %d", len(*v))
			}
			return n.msg.setFieldDelimiter((*v)[0])
		}
		return n.msg.setEncodingCharacters(*v)
	}
	if n.parent != nil && n.index > n.parent.ValueCount() {
		// n is an uncached placeholder Child() handed back beyond the
		// parent's current ValueCount: grow the parent's real children
		// rather than mutating this disconnected node in place.
		return growAndSet(n.parent, n.index, *v)
	}
	n.value = *v
	n.children = nil
	return nil
}

func (n *Node) SetValues(values []string) error {
	tc := n.typeCodeValue()
	n.children = make(map[int]*Node, len(values)+1)
	if n.level == LevelSegment {
		n.children[0] = &Node{msg: n.msg, parent: n, level: LevelField, index: 0, value: tc}
	}
	childLevel := n.level.Child()
	for i, v := range values {
		n.children[i+1] = &Node{msg: n.msg, parent: n, level: childLevel, index: i + 1, value: v}
	}
	return nil
}

func (n *Node) isProtected(index int) bool {
	return isProtectedIndex(n.level, index, n.typeCodeValue() == "MSH")
}

func (n *Node) isFixedField(index int) bool {
	return isFixedFieldIndex(n.level, index, n.typeCodeValue() == "MSH")
}

func (n *Node) insertChild(index int, value string) error {
	if index < 1 {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d must be greater than zero", index)
	}
	values := n.Values()
	if index > len(values) {
		for len(values) < index-1 {
			values = append(values, "")
		}
		values = append(values, value)
	} else {
		values = append(values[:index-1:index-1], append([]string{value}, values[index-1:]...)...)
	}
	return n.SetValues(values)
}

func (n *Node) deleteChild(index int) error {
	values := n.Values()
	if index < 1 || index > len(values) {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d is out of range", index)
	}
	values = append(values[:index-1], values[index:]...)
	return n.SetValues(values)
}

// Set is a fluent convenience wrapper over SetValue for builder callers
// that want to chain writes without checking an error at every level.
func (n *Node) Set(v string) *Node {
	_ = n.SetValue(&v)
	return n
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
