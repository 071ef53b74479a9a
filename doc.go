// Package hl7 reads, navigates, mutates, and emits HL7 version 2.x messages,
// the pipe-and-hat delimited healthcare interchange format.
//
// # Architecture
//
// The package models a message as a five-level element tree:
//
//	Message > Segment > Field > Repetition > Component > Subcomponent
//
// Two independent representations of that tree are provided:
//
//   - ParserMessage / Cursor (parser.go, cursor.go): a string-backed view
//     that slices the source text lazily on demand and edits it in place.
//     Produced by Parse.
//   - BuilderMessage / Node (builder.go, node.go): a node-graph view that
//     materializes each touched sub-element as an owned Node and
//     re-serializes on read. Produced by Build and BuildFrom.
//
// Both satisfy the Element interface and are mutated through the same
// Insert/Delete/Move/AddRange/DeleteAll operations in ops.go, so generic
// code may not observe which representation it holds except through Key.
//
// # Basic usage
//
//	m, err := hl7.Parse("MSH|^~\\&|\rPID|1||A^B&C~D")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := m.Segments()[1].Child(3).Child(1).Child(1).Value()
//
//	b := hl7.Build()
//	b.AddSegment("PID", "1", "", "A^B&C~D")
//
// # Thread safety
//
// A Message tree has no internal synchronization: Cursor and Node both
// cache state as they are read, so even read-only access from multiple
// goroutines on the same Message is unsafe unless externally serialized.
// Two independent Messages may be used concurrently without coordination.
package hl7
