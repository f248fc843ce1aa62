package period

import (
	"errors"
	"time"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

type Field string

const (
	FieldTitle     Field = "title"
	FieldType      Field = "type"
	FieldDateRange Field = "dateRange"
	FieldPositions Field = "positions"
)

var ErrDateRangeRequired = errors.New("date range is required")

// Form is the editable projection of a Record. The zero value is an empty form.
type Form struct {
	Title     string
	Type      string
	DateRange *DateRange
	Positions []position.Position
}

// FormErrors holds one message per field; absent keys mean no error.
type FormErrors map[Field]string

func (e FormErrors) Clone() FormErrors {
	out := make(FormErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// FieldUpdate replaces exactly one field of a Form.
type FieldUpdate interface {
	Field() Field
	apply(f Form) Form
}

type TitleUpdate struct{ Value string }

type TypeUpdate struct{ Value string }

// DateRangeUpdate with a nil Range clears the range.
type DateRangeUpdate struct{ Range *DateRange }

type PositionsUpdate struct{ Positions []position.Position }

func (TitleUpdate) Field() Field     { return FieldTitle }
func (TypeUpdate) Field() Field      { return FieldType }
func (DateRangeUpdate) Field() Field { return FieldDateRange }
func (PositionsUpdate) Field() Field { return FieldPositions }

func (u TitleUpdate) apply(f Form) Form {
	f.Title = u.Value
	return f
}

func (u TypeUpdate) apply(f Form) Form {
	f.Type = u.Value
	return f
}

func (u DateRangeUpdate) apply(f Form) Form {
	if u.Range == nil {
		f.DateRange = nil
		return f
	}
	r := *u.Range
	f.DateRange = &r
	return f
}

func (u PositionsUpdate) apply(f Form) Form {
	f.Positions = clonePositions(u.Positions)
	return f
}

// With returns a copy of f with one field replaced.
func (f Form) With(u FieldUpdate) Form {
	return u.apply(f.Clone())
}

func (f Form) Clone() Form {
	out := f
	if f.DateRange != nil {
		r := *f.DateRange
		out.DateRange = &r
	}
	out.Positions = clonePositions(f.Positions)
	return out
}

// WithRecord copies the loaded fields of r into f. A record whose dates are
// missing or inverted leaves the range empty; ok reports whether it was set.
func (f Form) WithRecord(r Record) (out Form, ok bool) {
	out = f.Clone()
	out.Title = r.Title
	out.Type = r.Type
	out.Positions = clonePositions(r.Positions)
	out.DateRange = nil
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return out, false
	}
	dr, err := NewDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return out, false
	}
	out.DateRange = &dr
	return out, true
}

// Payload is the body of a create or update call.
type Payload struct {
	Title     string
	Type      string
	Positions []position.Position
	StartDate time.Time
	EndDate   time.Time
}

func (f Form) Payload() (Payload, error) {
	if f.DateRange == nil {
		return Payload{}, ErrDateRangeRequired
	}
	positions := clonePositions(f.Positions)
	if positions == nil {
		positions = []position.Position{}
	}
	return Payload{
		Title:     f.Title,
		Type:      f.Type,
		Positions: positions,
		StartDate: f.DateRange.Start(),
		EndDate:   f.DateRange.End(),
	}, nil
}

func clonePositions(in []position.Position) []position.Position {
	if in == nil {
		return nil
	}
	out := make([]position.Position, len(in))
	copy(out, in)
	return out
}
