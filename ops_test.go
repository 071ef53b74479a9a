package hl7

import "testing"

// TestScenarioNestedNavigation exercises the literal message from the
// concrete scenario in the package's test notes: parsing
// "MSH|^~\&|\rPID|1||A^B&C~D" and walking into its deepest elements.
//
// PID-3 is "A^B&C~D": split on ~ gives repetitions "A^B&C" and "D"; "A^B&C"
// splits on ^ into components "A" and "B&C"; "B&C" splits on & into
// subcomponents "B" and "C".
func TestScenarioNestedNavigation(t *testing.T) {
	m, err := Parse("MSH|^~\\&|\rPID|1||A^B&C~D")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.ValueCount() != 2 {
		t.Fatalf("ValueCount() = %d, want 2", m.ValueCount())
	}
	field3 := m.Child(2).Child(3)
	comp2 := field3.Child(1).Child(2)
	if got := comp2.Child(1).Value(); got != "B" {
		t.Fatalf("PID-3 repetition 1 component 2 subcomponent 1 = %q, want B", got)
	}
	if got := comp2.Child(2).Value(); got != "C" {
		t.Fatalf("PID-3 repetition 1 component 2 subcomponent 2 = %q, want C", got)
	}
	if got := field3.Child(2).Value(); got != "D" {
		t.Fatalf("PID-3 repetition 2 = %q, want D", got)
	}
}

// TestScenarioBuildMSHFromScratch covers setting MSH's own fields on a
// freshly built message via SetFields, including the canonical explicit
// (empty) field 3 that the bootstrap MSH text itself carries.
func TestScenarioBuildMSHFromScratch(t *testing.T) {
	b := Build()
	b.SetFields(1, "MSH", "|", "^~\\&", "")
	if got := b.Value(); got != "MSH|^~\\&|" {
		t.Fatalf("Value() = %q, want MSH|^~\\&|", got)
	}
}

// TestScenarioCloneThenDeleteShiftsSiblings covers deleting a segment from
// a clone and observing the following segment shift into its place,
// without touching the original.
func TestScenarioCloneThenDeleteShiftsSiblings(t *testing.T) {
	m, err := Parse("MSH|^~\\&|\rPID|1\rPV1|2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	clone := m.Clone().(*ParserMessage)
	third := m.Child(3).Value()
	if err := Delete(clone.Child(2)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := clone.Child(2).Value(); got != third {
		t.Fatalf("clone[2] after deleting clone[2] = %q, want original[3] = %q", got, third)
	}
}

// TestScenarioDeleteSubcomponentCollapsesComponent covers deleting a
// subcomponent and observing the remaining subcomponent re-serialize
// without the subcomponent delimiter, and that the change propagates up
// through repetition and field.
func TestScenarioDeleteSubcomponentCollapsesComponent(t *testing.T) {
	m, err := Parse("MSH|^~\\&|\rTST|123^456&ABC~789^012")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	comp2 := m.Child(2).Child(1).Child(1).Child(2)
	if err := Delete(comp2.Child(1)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	want := "MSH|^~\\&|\rTST|123^ABC~789^012"
	if got := m.Value(); got != want {
		t.Fatalf("Value() after deleting a subcomponent = %q, want %q", got, want)
	}
}

// TestScenarioAddRangeSkippingSegments covers AddRange appending a subset
// of another message's segments onto a builder already seeded from a
// message of the same segment count.
func TestScenarioAddRangeSkippingSegments(t *testing.T) {
	const threeSeg = "MSH|^~\\&|\rPID|1\rPV1|2"

	b, err := BuildFrom(threeSeg)
	if err != nil {
		t.Fatalf("BuildFrom: %v", err)
	}
	other, err := Parse(threeSeg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	n := other.ValueCount()
	var tail []Element
	for i := 3; i <= n; i++ {
		tail = append(tail, other.Child(i))
	}
	if err := AddRange(b, tail); err != nil {
		t.Fatalf("AddRange: %v", err)
	}
	if want := 2*n - 2; b.ValueCount() != want {
		t.Fatalf("ValueCount() = %d, want 2N-2 = %d", b.ValueCount(), want)
	}
}

// TestScenarioRepeatedComponentSubcomponentAddressing covers deep
// navigation through repetition, component, and subcomponent on a
// synthetic MSH-3 built from four distinct identifiers.
func TestScenarioRepeatedComponentSubcomponentAddressing(t *testing.T) {
	id1, id2, id3, id4 := "A1", "B2", "C3", "D4"
	m, err := Parse("MSH|^~\\&|" + id1 + "~" + id2 + "^" + id3 + "&" + id4)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := m.Child(1).Child(3).Child(2).Child(2).Child(2).Value()
	if got != id4 {
		t.Fatalf("MSH-3 repetition 2 component 2 subcomponent 2 = %q, want %q", got, id4)
	}
}
