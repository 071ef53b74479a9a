package hl7

import "strings"

// ranger is satisfied by both *ParserMessage and *Cursor: anything that can
// report its own current absolute byte range within a message's backing
// text. A Message (or a detached Clone root) always owns its whole backing
// string; a Cursor's range is derived by walking its parent chain.
type ranger interface {
	Level() Level
	ownRange() (start, end int, ok bool)
}

// containerValues reads the 1..count direct children of an element
// occupying [start,end) at level, as raw substrings, given it is present.
func containerValues(data string, level Level, start, end int, present bool, enc Encoding) []string {
	if !present {
		return nil
	}
	count := childCount(data, level, start, end, enc)
	values := make([]string, count)
	for i := 1; i <= count; i++ {
		cstart, cend, ok := childSpan(data, level, start, end, i, enc)
		if ok {
			values[i-1] = data[cstart:cend]
		}
	}
	return values
}

// rebuildBody re-serializes a full set of 1-based child values back into
// the element's own body text, applying the Segment/MSH special case when
// level is LevelSegment.
func rebuildBody(level Level, typeCode string, values []string, enc Encoding) string {
	if level == LevelSegment {
		return joinSegmentString(typeCode, values, enc)
	}
	delim := level.Delimiter(enc)
	return strings.Join(values, string(delim))
}

// growAndSet places value at index among parent's direct children,
// padding any gap between the current ValueCount and index with empty
// strings, and writes the whole set back via SetValues. It is
// representation-agnostic: it only uses the Element interface, so it
// works identically whether parent is a Cursor, a ParserMessage, a Node,
// or a BuilderMessage.
func growAndSet(parent Element, index int, value string) error {
	values := parent.Values()
	for len(values) < index-1 {
		values = append(values, "")
	}
	if index <= len(values) {
		values[index-1] = value
	} else {
		values = append(values, value)
	}
	return parent.SetValues(values)
}

// typeCodeOf returns the 3-byte type code for a Segment occupying
// [start,end), or "" if the span is too short to hold one.
func typeCodeOf(data string, start, end int) string {
	if end-start < 3 {
		return ""
	}
	return data[start : start+3]
}

// isProtectedIndex reports whether index is a structurally fixed position
// a parent at level must refuse to let Delete touch.
func isProtectedIndex(level Level, index int, isMSH bool) bool {
	switch level {
	case LevelMessage:
		return index == 1
	case LevelSegment:
		if index == 0 {
			return true
		}
		if index == 1 || index == 2 {
			return isMSH
		}
		return false
	default:
		return false
	}
}

// isFixedFieldIndex reports whether index is specifically MSH-1 or MSH-2.
// Move does not consult it: MSH-1 and MSH-2 are refused through
// isProtectedIndex with ErrCodeElementMoveForbidden.
func isFixedFieldIndex(level Level, index int, isMSH bool) bool {
	return level == LevelSegment && isMSH && (index == 1 || index == 2)
}
