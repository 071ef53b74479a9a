package hl7

import (
	"testing"

	"github.com/google/uuid"
)

func TestKeyIsLazyAndStable(t *testing.T) {
	m, err := Parse(sampleMessage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first := m.Key()
	second := m.Key()
	if first != second {
		t.Fatalf("Key() is not stable across calls: %v != %v", first, second)
	}
}

func TestWithKeySeedsIdentity(t *testing.T) {
	want := uuid.New()
	m, err := Parse(sampleMessage, WithKey(want))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Key() != want {
		t.Fatalf("Key() = %v, want %v", m.Key(), want)
	}
}

func TestEqualComparesValueNotKey(t *testing.T) {
	a, err := Parse(sampleMessage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse(sampleMessage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Key() == b.Key() {
		t.Fatal("two independently parsed messages should not collide on Key")
	}
	if !Equal(a, b) {
		t.Fatal("Equal must hold for two messages with identical content")
	}
	if Hash(a) != Hash(b) {
		t.Fatal("Hash must agree for Equal messages")
	}
}

func TestEqualIgnoresLineEndingStyle(t *testing.T) {
	a, err := Parse("MSH|^~\\&|\rPID|1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse("MSH|^~\\&|\r\nPID|1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !Equal(a, b) {
		t.Fatal("Equal must normalize CRLF vs CR before comparing")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a, err := Parse("MSH|^~\\&|\rPID|1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse("MSH|^~\\&|\rPID|2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if Equal(a, b) {
		t.Fatal("Equal must not hold for messages differing in content")
	}
}

func TestEqualAcrossRepresentations(t *testing.T) {
	p, err := Parse(sampleMessage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := BuildFrom(sampleMessage)
	if err != nil {
		t.Fatalf("BuildFrom: %v", err)
	}
	if !Equal(p, b) {
		t.Fatal("Equal must hold between a parser and a builder message with the same content")
	}
}
