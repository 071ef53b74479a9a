package hl7

import (
	"errors"
	"testing"
)

func TestBuildSeedsCanonicalEmptyMSH(t *testing.T) {
	b := Build()
	if b.Value() != canonicalEmptyMSH {
		t.Fatalf("Build().Value() = %q, want %q", b.Value(), canonicalEmptyMSH)
	}
	if b.ValueCount() != 1 {
		t.Fatalf("Build().ValueCount() = %d, want 1", b.ValueCount())
	}
}

func TestBuildFromRejectsInvalidInput(t *testing.T) {
	if _, err := BuildFrom(""); !errors.Is(err, ErrMessageDataMustNotBeNull) {
		t.Fatalf("BuildFrom(\"\") error = %v, want ErrMessageDataMustNotBeNull", err)
	}
	if _, err := BuildFrom("MSH"); !errors.Is(err, ErrMessageDataIsTooShort) {
		t.Fatalf("BuildFrom(short) error = %v, want ErrMessageDataIsTooShort", err)
	}
	if _, err := BuildFrom("PIDxxxxxxxx"); !errors.Is(err, ErrMessageDataMustStartWithMSH) {
		t.Fatalf("BuildFrom(non-MSH) error = %v, want ErrMessageDataMustStartWithMSH", err)
	}
}

func TestAddSegmentAppendsInOrder(t *testing.T) {
	b := Build()
	b.AddSegment("PID", "1", "", "A^B&C~D")
	b.AddSegment("PV1", "1")
	if b.ValueCount() != 3 {
		t.Fatalf("ValueCount() = %d, want 3 (MSH, PID, PV1)", b.ValueCount())
	}
	pid := b.SegmentsOfType("PID")
	if len(pid) != 1 {
		t.Fatalf("len(SegmentsOfType(PID)) = %d, want 1", len(pid))
	}
	if got := pid[0].Child(3).Value(); got != "A^B&C~D" {
		t.Fatalf("PID-3 = %q, want A^B&C~D", got)
	}
}

func TestBuilderNavigationMatchesParser(t *testing.T) {
	b := Build()
	b.AddSegment("PID", "1", "", "A^B&C~D")

	parsed, err := Parse(b.Value())
	if err != nil {
		t.Fatalf("Parse(builder output): %v", err)
	}

	builderComp := b.SegmentsOfType("PID")[0].Child(3).Child(1).Child(2).Child(2).Value()
	parserComp := parsed.SegmentsOfType("PID")[0].Child(3).Child(1).Child(2).Child(2).Value()
	if builderComp != parserComp {
		t.Fatalf("builder and parser disagree: %q vs %q", builderComp, parserComp)
	}
	if builderComp != "C" {
		t.Fatalf("got %q, want C", builderComp)
	}
}

func TestBuilderSetFieldsGrowsAbsentSegment(t *testing.T) {
	b := Build()
	b.SetFields(3, "OBX", "1", "NM")
	if b.ValueCount() != 3 {
		t.Fatalf("ValueCount() = %d, want 3 (gap filled with a blank segment)", b.ValueCount())
	}
	blank := b.Child(2)
	if blank.Value() != "" {
		t.Fatalf("gap-filled segment 2 = %q, want empty", blank.Value())
	}
	obx := b.Child(3)
	if obx.Child(0).Value() != "OBX" {
		t.Fatalf("segment 3 type code = %q, want OBX", obx.Child(0).Value())
	}
	if obx.Child(2).Value() != "NM" {
		t.Fatalf("OBX-2 = %q, want NM", obx.Child(2).Value())
	}
}

func TestBuilderChildBeyondCountDoesNotMutate(t *testing.T) {
	b := Build()
	before := b.ValueCount()
	_ = b.Child(5).Value()
	if b.ValueCount() != before {
		t.Fatalf("reading Child(5) mutated ValueCount(): got %d, want %d", b.ValueCount(), before)
	}
	if !b.Child(5).IsAbsent() {
		t.Fatal("Child(5) beyond ValueCount() must report IsAbsent")
	}
}

func TestBuilderSetValueThroughPlaceholderGrows(t *testing.T) {
	b := Build()
	b.AddSegment("PID", "1")
	pid := b.SegmentsOfType("PID")[0]
	placeholder := pid.Child(5)
	v := "grown"
	if err := placeholder.SetValue(&v); err != nil {
		t.Fatalf("SetValue on placeholder: %v", err)
	}
	if got := pid.Child(5).Value(); got != "grown" {
		t.Fatalf("PID-5 after growing through a placeholder = %q, want grown", got)
	}
}

func TestBuilderCloneIndependence(t *testing.T) {
	b := Build()
	b.AddSegment("PID", "1", "", "A")
	clone := b.Clone().(*BuilderMessage)
	v := "changed"
	if err := clone.SegmentsOfType("PID")[0].Child(3).SetValue(&v); err != nil {
		t.Fatalf("SetValue on clone: %v", err)
	}
	if b.SegmentsOfType("PID")[0].Child(3).Value() == "changed" {
		t.Fatal("mutating a builder clone affected the original")
	}
}

func TestBuilderSetFieldDelimiterRewritesMaterializedAndLazyNodes(t *testing.T) {
	b, err := BuildFrom("MSH|^~\\&|SENDER\rPID|1||A^B")
	if err != nil {
		t.Fatalf("BuildFrom: %v", err)
	}
	if got := b.SegmentsOfType("PID")[0].Child(1).Value(); got != "1" {
		t.Fatalf("PID-1 before delimiter change = %q, want 1", got)
	}
	newDelim := ";"
	if err := b.Child(1).Child(1).SetValue(&newDelim); err != nil {
		t.Fatalf("SetValue(MSH-1): %v", err)
	}
	pid := b.SegmentsOfType("PID")[0]
	if pid.Child(1).Value() != "1" {
		t.Fatalf("PID-1 after delimiter change = %q, want 1", pid.Child(1).Value())
	}
	if pid.Child(3).Value() != "A^B" {
		t.Fatalf("PID-3 after delimiter change = %q, want A^B", pid.Child(3).Value())
	}
}

func TestBuilderValidate(t *testing.T) {
	b := Build()
	if !b.Validate() {
		t.Fatal("a freshly built message must validate")
	}
}

func TestBuilderTypeCodeMustBeThreeCharacters(t *testing.T) {
	b := Build()
	seg := b.Child(2).(*Node)
	bad := "PI"
	if err := seg.Child(0).SetValue(&bad); err == nil {
		t.Fatal("a 2-character type code must be rejected")
	}
}

func TestBuilderInsertDeleteInverse(t *testing.T) {
	b := Build()
	b.AddSegment("PID", "1", "", "A")
	before := b.Value()
	clone := b.SegmentsOfType("PID")[0].Clone()
	if err := Insert(b, clone, 2); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.ValueCount() != 3 {
		t.Fatalf("ValueCount() after insert = %d, want 3", b.ValueCount())
	}
	if err := Delete(b.Child(2)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Value() != before {
		t.Fatalf("Insert then Delete did not round-trip: got %q, want %q", b.Value(), before)
	}
}
