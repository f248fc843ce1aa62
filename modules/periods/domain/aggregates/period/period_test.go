package period_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) *period.DateRange {
	t.Helper()
	r, err := period.NewDateRange(start, end)
	require.NoError(t, err)
	return &r
}

func TestNewDateRange(t *testing.T) {
	r, err := period.NewDateRange(day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.True(t, r.Start().Equal(day(2024, 1, 1)))
	require.True(t, r.End().Equal(day(2024, 1, 31)))

	_, err = period.NewDateRange(day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)

	_, err = period.NewDateRange(day(2024, 2, 1), day(2024, 1, 1))
	require.ErrorIs(t, err, period.ErrInvertedRange)
}

func TestForm_WithReplacesOneField(t *testing.T) {
	base := period.Form{
		Title:     "Semester Ganjil",
		Type:      period.TypeDosen,
		DateRange: mustRange(t, day(2024, 1, 1), day(2024, 6, 30)),
		Positions: []position.Position{position.New("p1", "Lektor")},
	}

	updated := base.With(period.TypeUpdate{Value: period.TypeStaff})
	require.Equal(t, period.TypeStaff, updated.Type)
	require.Equal(t, base.Title, updated.Title)
	require.True(t, updated.DateRange.Equal(*base.DateRange))
	require.Equal(t, base.Positions, updated.Positions)
	require.Equal(t, period.TypeDosen, base.Type, "original form must not change")

	cleared := base.With(period.DateRangeUpdate{})
	require.Nil(t, cleared.DateRange)
	require.NotNil(t, base.DateRange)

	withPositions := base.With(period.PositionsUpdate{Positions: []position.Position{position.New("p2", "Asisten")}})
	withPositions.Positions[0].Name = "mutated"
	require.Equal(t, "Lektor", base.Positions[0].Name)
}

func TestForm_WithRecord(t *testing.T) {
	rec := period.Record{
		ID:        "t1",
		Title:     "A",
		Type:      period.TypeStaff,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 31),
		Positions: []position.Position{position.New("p1", "One"), position.New("p2", "Two")},
	}

	form, ok := period.Form{}.WithRecord(rec)
	require.True(t, ok)
	require.Equal(t, "A", form.Title)
	require.Equal(t, period.TypeStaff, form.Type)
	require.True(t, form.DateRange.Equal(*mustRange(t, day(2024, 1, 1), day(2024, 1, 31))))
	require.Equal(t, rec.Positions, form.Positions)

	rec.EndDate = day(2023, 12, 1)
	form, ok = period.Form{}.WithRecord(rec)
	require.False(t, ok)
	require.Nil(t, form.DateRange)
	require.Equal(t, "A", form.Title)
}

func TestForm_Payload(t *testing.T) {
	_, err := period.Form{Title: "A"}.Payload()
	require.ErrorIs(t, err, period.ErrDateRangeRequired)

	payload, err := period.Form{
		Title:     "A",
		Type:      "STAFF",
		DateRange: mustRange(t, day(2024, 1, 1), day(2024, 1, 31)),
	}.Payload()
	require.NoError(t, err)
	require.True(t, payload.StartDate.Equal(day(2024, 1, 1)))
	require.True(t, payload.EndDate.Equal(day(2024, 1, 31)))
	require.NotNil(t, payload.Positions)
	require.Empty(t, payload.Positions)
}

func TestForm_Validate(t *testing.T) {
	errs := period.Form{}.Validate(context.Background())
	require.Len(t, errs, 3)
	require.Contains(t, errs, period.FieldTitle)
	require.Contains(t, errs, period.FieldType)
	require.Contains(t, errs, period.FieldDateRange)
	require.NotContains(t, errs, period.FieldPositions)

	errs = period.Form{Title: "   ", Type: "STAFF", DateRange: mustRange(t, day(2024, 1, 1), day(2024, 1, 2))}.Validate(context.Background())
	require.Equal(t, []period.Field{period.FieldTitle}, keys(errs))

	errs = period.Form{Title: "A", Type: "STAFF", DateRange: mustRange(t, day(2024, 1, 1), day(2024, 1, 2))}.Validate(context.Background())
	require.Empty(t, errs)
}

func TestDisplayType(t *testing.T) {
	require.Equal(t, "Staff", period.DisplayType("STAFF"))
	require.Equal(t, "Dosen", period.DisplayType("dosen"))
	require.Equal(t, "", period.DisplayType(""))
}

func keys(errs period.FormErrors) []period.Field {
	out := make([]period.Field, 0, len(errs))
	for k := range errs {
		out = append(out, k)
	}
	return out
}
