package hl7

import "sort"

// Insert places e's Value as a new child of parent at index, shifting any
// existing children at index..ValueCount up by one. It is defined
// identically for the Cursor-backed parser tree and the Node-backed
// builder tree: both satisfy container, and this function never touches
// either representation's internals directly.
func Insert(parent Element, e Element, index int) error {
	return InsertValue(parent, e.Value(), index)
}

// InsertValue is Insert's string-literal counterpart: Insert(string, index)
// in the language-neutral API.
func InsertValue(parent Element, value string, index int) error {
	c, ok := parent.(container)
	if !ok {
		return newError(ErrCodeElementDeleteForbidden, "%s cannot host children", parent.Level())
	}
	return c.insertChild(index, value)
}

// Delete removes e from its parent, shifting any siblings above e's index
// down by one. Deleting the Message itself, or a structurally protected
// position (MSH-1, MSH-2, a segment's type code), fails.
func Delete(e Element) error {
	parent := e.Parent()
	if parent == nil {
		return newError(ErrCodeElementDeleteForbidden, "the message itself cannot be deleted")
	}
	c, ok := parent.(container)
	if !ok {
		return newError(ErrCodeElementDeleteForbidden, "%s cannot host children", parent.Level())
	}
	if c.isProtected(e.Index()) {
		return newError(ErrCodeElementDeleteForbidden, "index %d of %s is a protected position", e.Index(), parent.Level())
	}
	return c.deleteChild(e.Index())
}

// Move relocates e to targetIndex within its parent: Delete at e's current
// index followed by Insert at targetIndex, under the same protected-
// position rules as Delete. Moving e to its own current index is a no-op.
func Move(e Element, targetIndex int) error {
	if targetIndex < 1 {
		return newError(ErrCodeElementMoveIndexBelowMinimum, "move target index %d is below the minimum of 1", targetIndex)
	}
	if e.Index() == targetIndex {
		return nil
	}
	parent := e.Parent()
	if parent == nil {
		return newError(ErrCodeElementMoveForbidden, "the message itself cannot be moved")
	}
	c, ok := parent.(container)
	if !ok {
		return newError(ErrCodeElementMoveForbidden, "%s cannot host children", parent.Level())
	}
	if c.isProtected(e.Index()) {
		return newError(ErrCodeElementMoveForbidden, "index %d of %s is a protected position", e.Index(), parent.Level())
	}

	value := e.Value()
	if err := c.deleteChild(e.Index()); err != nil {
		return err
	}
	return c.insertChild(targetIndex, value)
}

// AddRange inserts each element of seq at the end of parent, in order.
func AddRange(parent Element, seq []Element) error {
	for _, e := range seq {
		if err := InsertValue(parent, e.Value(), parent.ValueCount()+1); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll deletes every element of seq. All elements must share the same
// immediate parent; deleting is done from the highest index to the lowest
// so earlier deletes never shift the index of an element still pending.
func DeleteAll(seq []Element) error {
	if len(seq) == 0 {
		return nil
	}
	parent := seq[0].Parent()
	for _, e := range seq[1:] {
		if !sameParent(parent, e.Parent()) {
			return newError(ErrCodeElementDeleteForbidden, "cannot bulk-delete elements with different parents")
		}
	}
	ordered := append([]Element(nil), seq...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index() > ordered[j].Index() })
	for _, e := range ordered {
		if err := Delete(e); err != nil {
			return err
		}
	}
	return nil
}

func sameParent(a, b Element) bool {
	return a == b
}
