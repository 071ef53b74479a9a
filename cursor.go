package hl7

import "fmt"

// Cursor is the parser representation of a tree element: a thin, lazy view
// over a range of a ParserMessage's backing string. No sub-element is ever
// materialized ahead of use — a Cursor computes its own byte range on
// demand by walking its parent chain and re-splitting on the appropriate
// delimiter, the same way Value/Child are described in terms of the
// message's raw text throughout this package.
//
// Cursor instances are cached by index on their parent, so repeated access
// to the same position returns the same *Cursor (object identity), but
// nothing is cached about the position's content: an edit anywhere in the
// message is immediately visible to every live Cursor, since the next
// ownRange() walk simply re-splits the (now different) text.
type Cursor struct {
	msg    *ParserMessage
	parent Element // nil for a Clone root
	level  Level
	index  int

	children map[int]*Cursor
}

var _ Element = (*Cursor)(nil)
var _ container = (*Cursor)(nil)
var _ ranger = (*Cursor)(nil)

func (c *Cursor) Level() Level { return c.level }
func (c *Cursor) Index() int   { return c.index }

func (c *Cursor) Delimiter() byte {
	return c.level.Delimiter(c.msg.enc)
}

func (c *Cursor) ownRange() (int, int, bool) {
	if c.parent == nil {
		return 0, len(c.msg.data), true
	}
	pr, ok := c.parent.(ranger)
	if !ok {
		return 0, 0, false
	}
	pstart, pend, pok := pr.ownRange()
	if !pok {
		return pend, pend, false
	}
	return childSpan(c.msg.data, c.parent.Level(), pstart, pend, c.index, c.msg.enc)
}

func (c *Cursor) IsAbsent() bool {
	_, _, ok := c.ownRange()
	return !ok
}

func (c *Cursor) Value() string {
	start, end, ok := c.ownRange()
	if !ok {
		return ""
	}
	return c.msg.data[start:end]
}

func (c *Cursor) ValueCount() int {
	start, end, ok := c.ownRange()
	if !ok {
		return 0
	}
	return childCount(c.msg.data, c.level, start, end, c.msg.enc)
}

func (c *Cursor) Values() []string {
	start, end, ok := c.ownRange()
	return containerValues(c.msg.data, c.level, start, end, ok, c.msg.enc)
}

func (c *Cursor) Child(i int) Element {
	if c.children == nil {
		c.children = make(map[int]*Cursor)
	}
	if cached, ok := c.children[i]; ok {
		return cached
	}
	child := &Cursor{msg: c.msg, parent: c, level: c.level.Child(), index: i}
	c.children[i] = child
	return child
}

func (c *Cursor) Parent() Element {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

func (c *Cursor) Clone() Element {
	detached := &ParserMessage{data: c.Value(), enc: c.msg.enc}
	return &Cursor{msg: detached, level: c.level, index: c.index}
}

func (c *Cursor) GetValue(path ...int) string   { return descendValue(c, path) }
func (c *Cursor) GetValues(path ...int) []string { return descendValues(c, path) }

func (c *Cursor) isMSH() bool {
	start, end, ok := c.ownRange()
	if !ok {
		return false
	}
	return typeCodeOf(c.msg.data, start, end) == "MSH"
}

func (c *Cursor) isProtected(index int) bool {
	return isProtectedIndex(c.level, index, c.isMSH())
}

func (c *Cursor) isFixedField(index int) bool {
	return isFixedFieldIndex(c.level, index, c.isMSH())
}

// isMSHFieldChild reports whether child cursor at fieldIndex is MSH-1 or
// MSH-2 of this segment cursor.
func (c *Cursor) isMSHFieldChild(fieldIndex int) bool {
	return c.level == LevelSegment && c.isMSH() && (fieldIndex == 1 || fieldIndex == 2)
}

func (c *Cursor) SetValue(v *string) error {
	if v == nil {
		return Delete(c)
	}
	if seg, ok := c.parent.(*Cursor); ok {
		if c.level == LevelField && c.index == 0 && seg.level == LevelSegment {
			if len(*v) != 3 {
				return fmt.Errorf("hl7: segment type code must be exactly 3 characters, got %q", *v)
			}
			return c.setRawValue(upperASCII(*v))
		}
		if seg.isMSHFieldChild(c.index) {
			if c.index == 1 {
				if len(*v) != 1 {
					return fmt.Errorf("hl7: MSH-1 must be exactly one character, got %d", len(*v))
				}
				return c.msg.setFieldDelimiter((*v)[0])
			}
			return c.msg.setEncodingCharacters(*v)
		}
	}
	return c.setRawValue(*v)
}

func (c *Cursor) setRawValue(v string) error {
	start, end, ok := c.ownRange()
	if ok {
		c.msg.replace(start, end, v)
		return nil
	}
	if c.parent == nil {
		return newError(ErrCodeElementDeleteForbidden, "the message itself cannot be absent")
	}
	return growAndSet(c.parent, c.index, v)
}

func (c *Cursor) SetValues(values []string) error {
	start, end, ok := c.ownRange()
	if !ok {
		return newError(ErrCodeElementDeleteForbidden, "position is itself absent")
	}
	body := rebuildBody(c.level, typeCodeOf(c.msg.data, start, end), values, c.msg.enc)
	c.msg.replace(start, end, body)
	return nil
}

func (c *Cursor) insertChild(index int, value string) error {
	if index < 1 {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d must be greater than zero", index)
	}
	values := c.Values()
	if index > len(values) {
		for len(values) < index-1 {
			values = append(values, "")
		}
		values = append(values, value)
	} else {
		values = append(values[:index-1:index-1], append([]string{value}, values[index-1:]...)...)
	}
	return c.SetValues(values)
}

func (c *Cursor) deleteChild(index int) error {
	values := c.Values()
	if index < 1 || index > len(values) {
		return newError(ErrCodeSegmentIndexMustBeGreaterThanZero, "index %d is out of range", index)
	}
	values = append(values[:index-1], values[index:]...)
	return c.SetValues(values)
}
