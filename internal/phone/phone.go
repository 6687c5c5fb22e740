// Package phone segments message text into plain and telephone-number runs.
//
// Segmentation is pure: it never reaches into rendering or the dialer, and
// concatenating the returned segments always reconstructs the input exactly.
// The matching policy accepts 10 contiguous digits, 3-3-4 groupings separated
// by hyphens, dots, or spaces, parenthesized area codes, and bare 3-digit
// short dial codes such as 988. The 3-digit form knowingly over-matches
// ordinary numbers in prose; short dial codes must stay tappable, so the
// policy is not narrowed.
package phone

import "regexp"

// Kind tags a segment as plain text or a telephone number.
type Kind string

const (
	// KindPlain marks ordinary text.
	KindPlain Kind = "plain"
	// KindPhoneNumber marks a run matching an accepted phone-number form.
	KindPhoneNumber Kind = "phone_number"
)

// Segment is one contiguous run of the input text.
type Segment struct {
	Text string
	Kind Kind
}

// Alternatives are ordered longest-first so the leftmost-first matcher prefers
// full numbers over their 3-digit prefixes.
var phonePattern = regexp.MustCompile(`\(\d{3}\)[\s.-]?\d{3}[\s.-]?\d{4}|\d{3}[\s.-]\d{3}[\s.-]\d{4}|\d{10}|\d{3}`)

var nonDialRunes = regexp.MustCompile(`[^0-9+-]`)

// Segments splits text into an ordered sequence of plain and phone-number
// segments covering the whole input.
func Segments(text string) []Segment {
	if text == "" {
		return nil
	}
	matches := phonePattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text, Kind: KindPlain}}
	}

	var segments []Segment
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]], Kind: KindPlain})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Kind: KindPhoneNumber})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:], Kind: KindPlain})
	}
	return segments
}

// CleanNumber strips every character except digits, '+', and '-' so the
// result is safe to hand to a dialer.
func CleanNumber(raw string) string {
	return nonDialRunes.ReplaceAllString(raw, "")
}

// DialURI builds the tel: URI for a raw number segment.
func DialURI(raw string) string {
	return "tel:" + CleanNumber(raw)
}
