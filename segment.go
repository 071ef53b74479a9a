package hl7

import "strings"

// segmentFieldCount returns the number of addressable fields (excluding
// index 0, the type code) in a segment's raw text, honoring the MSH
// special case: field 1 is the field delimiter itself and field 2 is the
// encoding-characters field.
func segmentFieldCount(raw, typeCode string, enc Encoding) int {
	return len(segmentFieldsString(raw, typeCode, enc))
}

// segmentFieldsString splits a segment's raw text (including its 3-byte
// type code) into its 1-based field values, applying the MSH special case.
func segmentFieldsString(raw, typeCode string, enc Encoding) []string {
	if len(raw) <= 3 {
		return nil
	}
	rest := raw[3:]
	if rest == "" {
		return nil
	}
	if typeCode == "MSH" {
		field1 := rest[0:1]
		body := rest[1:]
		pieces := splitPreserveEmpty(body, enc.Field)
		fields := make([]string, 0, len(pieces)+1)
		fields = append(fields, field1)
		fields = append(fields, pieces...)
		return fields
	}
	body := rest[1:]
	return splitPreserveEmpty(body, enc.Field)
}

// joinSegmentString re-serializes a type code and its 1-based field values
// back into a segment's raw text, applying the MSH special case.
func joinSegmentString(typeCode string, fields []string, enc Encoding) string {
	if len(fields) == 0 {
		return typeCode
	}
	if typeCode == "MSH" {
		field1 := fields[0]
		return typeCode + field1 + strings.Join(fields[1:], string(enc.Field))
	}
	return typeCode + string(enc.Field) + strings.Join(fields, string(enc.Field))
}

// splitPreserveEmpty splits s on sep, preserving empty pieces, and returns
// nil (not a one-element slice) for an empty input — matching the rule
// that the count at a level is 0 for an empty slice, not 1.
func splitPreserveEmpty(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, string(sep))
}

// --- byte-offset variants, used by the Cursor-backed parser tree ---

// segmentFieldSpan returns the absolute [start, end) byte range of field
// index within a segment occupying [segStart, segEnd) in data, and
// whether that field is present. index 0 is the type code.
func segmentFieldSpan(data string, segStart, segEnd int, typeCode string, index int, enc Encoding) (int, int, bool) {
	if index == 0 {
		end := segStart + 3
		if end > segEnd {
			end = segEnd
		}
		return segStart, end, segEnd-segStart >= 3
	}
	if segEnd-segStart <= 3 {
		return 0, 0, false
	}
	restStart := segStart + 3
	if typeCode == "MSH" {
		if index == 1 {
			end := restStart + 1
			if end > segEnd {
				end = segEnd
			}
			return restStart, end, true
		}
		bodyStart := restStart + 1
		return spanOfPiece(data, bodyStart, segEnd, enc.Field, index-2)
	}
	bodyStart := restStart + 1
	return spanOfPiece(data, bodyStart, segEnd, enc.Field, index-1)
}

// spanOfPiece returns the absolute [start, end) byte range of the
// pieceIndex-th (0-based) piece obtained by splitting data[start:end) on
// sep, and whether that piece is present. An empty [start,end) range has
// zero pieces.
func spanOfPiece(data string, start, end int, sep byte, pieceIndex int) (int, int, bool) {
	if pieceIndex < 0 || start > end {
		return 0, 0, false
	}
	if start == end {
		return 0, 0, false
	}
	pos := start
	piece := 0
	pieceStart := start
	for pos < end {
		if data[pos] == sep {
			if piece == pieceIndex {
				return pieceStart, pos, true
			}
			piece++
			pieceStart = pos + 1
		}
		pos++
	}
	if piece == pieceIndex {
		return pieceStart, end, true
	}
	return 0, 0, false
}

// pieceCount returns the number of pieces data[start:end) splits into on
// sep (0 for an empty range).
func pieceCount(data string, start, end int, sep byte) int {
	if start >= end {
		return 0
	}
	n := 1
	for i := start; i < end; i++ {
		if data[i] == sep {
			n++
		}
	}
	return n
}

// childSpan dispatches to the level-appropriate splitting rule and returns
// the absolute [start, end) byte range of childIndex within the parent
// element's own [pstart, pend) range, and whether it is present. This is
// the single place where the Segment/MSH special case meets the otherwise
// uniform level-delimiter splitting used everywhere else.
func childSpan(data string, parentLevel Level, pstart, pend, childIndex int, enc Encoding) (int, int, bool) {
	switch parentLevel {
	case LevelMessage:
		return spanOfPiece(data, pstart, pend, SegmentDelimiter, childIndex-1)
	case LevelSegment:
		typeCode := ""
		if pend-pstart >= 3 {
			typeCode = data[pstart : pstart+3]
		}
		return segmentFieldSpan(data, pstart, pend, typeCode, childIndex, enc)
	case LevelField:
		return spanOfPiece(data, pstart, pend, enc.Repetition, childIndex-1)
	case LevelRepetition:
		return spanOfPiece(data, pstart, pend, enc.Component, childIndex-1)
	case LevelComponent:
		return spanOfPiece(data, pstart, pend, enc.Subcomponent, childIndex-1)
	default:
		return 0, 0, false
	}
}

// childCount dispatches to the level-appropriate counting rule.
func childCount(data string, parentLevel Level, pstart, pend int, enc Encoding) int {
	switch parentLevel {
	case LevelMessage:
		return pieceCount(data, pstart, pend, SegmentDelimiter)
	case LevelSegment:
		typeCode := ""
		if pend-pstart >= 3 {
			typeCode = data[pstart : pstart+3]
		}
		return segmentFieldCount(data[pstart:pend], typeCode, enc)
	case LevelField:
		return pieceCount(data, pstart, pend, enc.Repetition)
	case LevelRepetition:
		return pieceCount(data, pstart, pend, enc.Component)
	case LevelComponent:
		return pieceCount(data, pstart, pend, enc.Subcomponent)
	default:
		return 0
	}
}

// childDelimiter returns the delimiter byte that a child of a parentLevel
// element splits its own children (if any) on, i.e.
// parentLevel.Child().Delimiter(enc).
func childDelimiter(parentLevel Level, enc Encoding) byte {
	return parentLevel.Child().Delimiter(enc)
}
