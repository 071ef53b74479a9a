package hl7

import "testing"

func TestEncodingEscapeUnescapeRoundTrip(t *testing.T) {
	enc := DefaultEncoding()
	cases := []string{
		"plain text",
		"a|b^c~d\\e&f",
		"emoji 😀 next to | pipe",
		"",
		"\\F\\",
	}
	for _, text := range cases {
		escaped := enc.Escape(text)
		got := enc.UnEscape(escaped)
		if got != text {
			t.Errorf("UnEscape(Escape(%q)) = %q, want %q", text, got, text)
		}
	}
}

func TestEncodingEscapeDoesNotSplitGraphemes(t *testing.T) {
	enc := DefaultEncoding()
	text := "é|日"
	escaped := enc.Escape(text)
	if got := enc.UnEscape(escaped); got != text {
		t.Errorf("UnEscape(Escape(%q)) = %q, want %q", text, got, text)
	}
}

func TestEncodingUnEscapePassThroughForms(t *testing.T) {
	enc := DefaultEncoding()
	cases := []string{
		`\.br\`,
		`\X0A\`,
		`\Zlocal\`,
	}
	for _, text := range cases {
		if got := enc.UnEscape(text); got != text {
			t.Errorf("UnEscape(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestEncodingUnEscapeUnterminatedSequence(t *testing.T) {
	enc := DefaultEncoding()
	text := `abc\F`
	if got := enc.UnEscape(text); got != text {
		t.Errorf("UnEscape(%q) = %q, want literal passthrough", text, got)
	}
}

func TestEncodingValid(t *testing.T) {
	if !DefaultEncoding().Valid() {
		t.Fatal("default encoding must be valid")
	}
	collide := DefaultEncoding()
	collide.Component = collide.Field
	if collide.Valid() {
		t.Fatal("encoding with a field/component collision must be invalid")
	}
}

func TestParseEncodingCharactersDefaultsShortInput(t *testing.T) {
	enc := ParseEncodingCharacters('|', "^~")
	if enc.Escape != DefaultEscape || enc.Subcomponent != DefaultSubcomponent {
		t.Fatalf("short encoding characters should default the rest: got %+v", enc)
	}
}
