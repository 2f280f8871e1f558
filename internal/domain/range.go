package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRangeFormat is returned when range text has no from/to separator.
var ErrRangeFormat = errors.New("expected FROM-TO, e.g. 9am-5pm")

// Field names one endpoint of a Range.
type Field string

const (
	FieldFrom Field = "from"
	FieldTo   Field = "to"
)

// Range is a same-day interval. A nil endpoint means the field is unset.
type Range struct {
	From *Time `json:"from"`
	To   *Time `json:"to"`
}

// NewRange builds a range with both endpoints set.
func NewRange(from, to Time) Range {
	return Range{From: &from, To: &to}
}

// Complete reports whether both endpoints are set.
func (r Range) Complete() bool {
	return r.From != nil && r.To != nil
}

// Valid reports whether both endpoints are set and To is strictly later than
// From. Ranges that wrap past midnight are not valid.
func (r Range) Valid() bool {
	if !r.Complete() {
		return false
	}
	return r.To.Hour > r.From.Hour ||
		(r.To.Hour == r.From.Hour && r.To.Minute > r.From.Minute)
}

// Get returns the endpoint for f.
func (r Range) Get(f Field) *Time {
	if f == FieldFrom {
		return r.From
	}
	return r.To
}

// With returns a copy of r with endpoint f replaced by t (nil clears it).
func (r Range) With(f Field, t *Time) Range {
	if t != nil {
		v := *t
		t = &v
	}
	if f == FieldFrom {
		r.From = t
	} else {
		r.To = t
	}
	return r
}

// FieldError reports which endpoints of a range text failed to parse.
type FieldError struct {
	Fields []Field
	Input  string
}

func (e *FieldError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("invalid %s in %q", strings.Join(names, " and "), e.Input)
}

func (e *FieldError) Unwrap() error { return ErrUnparseable }

// Has reports whether f is among the failed fields.
func (e *FieldError) Has(f Field) bool {
	for _, x := range e.Fields {
		if x == f {
			return true
		}
	}
	return false
}

// SplitRange cuts "9am-5pm", "9am – 5pm" or "9am to 5pm" into trimmed
// endpoint strings.
func SplitRange(s string) (from, to string, err error) {
	for i := 0; i+4 <= len(s); i++ {
		if strings.EqualFold(s[i:i+4], " to ") {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+4:]), nil
		}
	}
	for _, sep := range []string{"–", "—", "-"} {
		if a, b, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(a), strings.TrimSpace(b), nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrRangeFormat, s)
}

// ParseRange parses range text into a Range. Empty endpoints stay nil.
// On a *FieldError the returned Range still carries the endpoints that did
// parse. Ordering is not checked; use Valid.
func ParseRange(s string) (Range, error) {
	fromRaw, toRaw, err := SplitRange(s)
	if err != nil {
		return Range{}, err
	}
	var (
		r   Range
		bad []Field
	)
	for _, f := range []Field{FieldFrom, FieldTo} {
		raw := fromRaw
		if f == FieldTo {
			raw = toRaw
		}
		t, err := Parse(raw)
		switch {
		case errors.Is(err, ErrEmpty):
		case err != nil:
			bad = append(bad, f)
		default:
			r = r.With(f, &t)
		}
	}
	if len(bad) > 0 {
		return r, &FieldError{Fields: bad, Input: s}
	}
	return r, nil
}
