package hours

import (
	"errors"

	"github.com/monstermash2008/time-range/internal/domain"
)

const (
	MsgRangeInvalid = "Time range not valid"
	MsgFromInvalid  = "Start time not valid"
	MsgToInvalid    = "End time not valid"
)

// Report is the outcome of editing a range: the resulting endpoints and
// which errors the user should see.
type Report struct {
	Range      domain.Range
	FromError  bool
	ToError    bool
	RangeError bool
}

// OK reports whether there is nothing to warn about.
func (r Report) OK() bool {
	return !r.FromError && !r.ToError && !r.RangeError
}

// Messages lists user-facing warnings. A backwards range is only mentioned
// when both fields parsed.
func (r Report) Messages() []string {
	var msgs []string
	if r.RangeError && !r.FromError && !r.ToError {
		msgs = append(msgs, MsgRangeInvalid)
	}
	if r.FromError {
		msgs = append(msgs, MsgFromInvalid)
	}
	if r.ToError {
		msgs = append(msgs, MsgToInvalid)
	}
	return msgs
}

// apply parses raw into field f. Empty input clears the field without an
// error; unparseable input flags the field and keeps the previous value.
func (r *Report) apply(f domain.Field, raw string) {
	t, err := domain.Parse(raw)
	failed := false
	switch {
	case errors.Is(err, domain.ErrEmpty):
		r.Range = r.Range.With(f, nil)
	case err != nil:
		failed = true
	default:
		r.Range = r.Range.With(f, &t)
	}
	if f == domain.FieldFrom {
		r.FromError = failed
	} else {
		r.ToError = failed
	}
}

func (r *Report) checkRange() {
	r.RangeError = r.Range.Complete() && !r.Range.Valid()
}

// Evaluate runs raw from/to text through the same rules as the editor
// without touching storage.
func Evaluate(fromRaw, toRaw string) Report {
	var rep Report
	rep.apply(domain.FieldFrom, fromRaw)
	rep.apply(domain.FieldTo, toRaw)
	rep.checkRange()
	return rep
}
