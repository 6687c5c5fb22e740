package phone

import (
	"strings"
	"testing"
)

func joinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func phoneTexts(segments []Segment) []string {
	var out []string
	for _, seg := range segments {
		if seg.Kind == KindPhoneNumber {
			out = append(out, seg.Text)
		}
	}
	return out
}

// TestSegments_RoundTrip verifies the lossless-coverage property: for any
// input, concatenating the segments reconstructs the input exactly.
func TestSegments_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"no numbers here",
		"call 988 now",
		"9847386158",
		"reach us at 800-950-6264 or (800) 222-1222.",
		"dots 800.662.4357 and spaces 800 662 4357",
		"digits stuck together 12345678901234",
		"unicode ☎ and numbers 988 mixed — fine",
	}
	for _, input := range inputs {
		if got := joinSegments(Segments(input)); got != input {
			t.Errorf("round trip failed for %q: got %q", input, got)
		}
	}
}

func TestSegments_AcceptedForms(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"ten contiguous digits", "call 9847386158 today", "9847386158"},
		{"hyphen grouping", "NAMI: 800-950-6264", "800-950-6264"},
		{"dot grouping", "try 800.662.4357", "800.662.4357"},
		{"space grouping", "try 800 662 4357", "800 662 4357"},
		{"parenthesized area code", "poison control (800) 222-1222", "(800) 222-1222"},
		{"short dial code", "dial 988 for crisis support", "988"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			phones := phoneTexts(Segments(tc.input))
			if len(phones) != 1 {
				t.Fatalf("expected 1 phone segment, got %d: %v", len(phones), phones)
			}
			if phones[0] != tc.want {
				t.Errorf("expected %q, got %q", tc.want, phones[0])
			}
		})
	}
}

func TestSegments_PlainTextOnly(t *testing.T) {
	segments := Segments("hello there, no digits at all")
	if len(segments) != 1 {
		t.Fatalf("expected a single plain segment, got %d", len(segments))
	}
	if segments[0].Kind != KindPlain {
		t.Errorf("expected plain kind, got %q", segments[0].Kind)
	}
}

// TestSegments_ThreeDigitOverMatch documents the known over-match of the
// 3-digit form: ordinary numbers in prose become tappable. This is the
// accepted cost of keeping short dial codes like 988 tappable, not a defect
// to narrow away.
func TestSegments_ThreeDigitOverMatch(t *testing.T) {
	phones := phoneTexts(Segments("room 101 is open"))
	if len(phones) != 1 || phones[0] != "101" {
		t.Fatalf("expected the documented 3-digit over-match on '101', got %v", phones)
	}
}

func TestSegments_PrefersLongestForm(t *testing.T) {
	// A full 3-3-4 number must match as one segment, not as a 3-digit prefix.
	phones := phoneTexts(Segments("800-656-4673"))
	if len(phones) != 1 || phones[0] != "800-656-4673" {
		t.Fatalf("expected full number match, got %v", phones)
	}
}

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"(800) 222-1222", "800222-1222"},
		{"+1 800 662 4357", "+18006624357"},
		{"988", "988"},
		{"no digits", ""},
	}
	for _, tc := range cases {
		if got := CleanNumber(tc.input); got != tc.want {
			t.Errorf("CleanNumber(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestDialURI(t *testing.T) {
	if got := DialURI("(800) 222-1222"); got != "tel:800222-1222" {
		t.Errorf("expected 'tel:800222-1222', got %q", got)
	}
	if got := DialURI("988"); got != "tel:988" {
		t.Errorf("expected 'tel:988', got %q", got)
	}
}
