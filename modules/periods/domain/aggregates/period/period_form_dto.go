package period

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/pkg/constants"
	"github.com/iota-uz/iota-periods/pkg/intl"
	"github.com/iota-uz/iota-periods/pkg/serrors"
)

// FormDTO is the form-encoded body posted by the edit page.
type FormDTO struct {
	FormToken string
	Title     string
	Type      string
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
	// PositionIDs lists the selected positions in order.
	PositionIDs []string
	// PositionsJSON carries the positions the form held when it was rendered,
	// so selected ones are sent back exactly as they were loaded.
	PositionsJSON string
}

var invalidRangeError = serrors.NewError(
	"VALIDATION_daterange",
	"End date must not be before start date",
	"ValidationErrors.daterange",
)

// Ok checks that the dates are well formed and ordered. Missing values are
// reported later by Form.Validate.
func (d *FormDTO) Ok(ctx context.Context) (map[Field]string, bool) {
	l, _ := intl.UseLocalizer(ctx)
	errs := make(map[Field]string)

	if err := constants.Validate.Struct(d); err != nil {
		var validatorErrs validator.ValidationErrors
		if errors.As(err, &validatorErrs) {
			for _, e := range serrors.ProcessValidatorErrors(validatorErrs, func(field string) string {
				return "Periods.Fields." + field
			}) {
				errs[FieldDateRange] = e.Localize(l)
			}
		}
		return errs, false
	}

	start, end, ok := d.dates(time.UTC)
	if ok && end.Before(start) {
		errs[FieldDateRange] = invalidRangeError.Localize(l)
		return errs, false
	}
	return errs, true
}

// dates parses the posted day values as midnight in loc.
func (d *FormDTO) dates(loc *time.Location) (time.Time, time.Time, bool) {
	if d.StartDate == "" || d.EndDate == "" {
		return time.Time{}, time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(constants.DateFormat, d.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation(constants.DateFormat, d.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// HeldPositions decodes PositionsJSON; malformed input yields no positions.
func (d *FormDTO) HeldPositions() []position.Position {
	if strings.TrimSpace(d.PositionsJSON) == "" {
		return nil
	}
	var held []position.Position
	if err := json.Unmarshal([]byte(d.PositionsJSON), &held); err != nil {
		return nil
	}
	return held
}

// Updates turns the posted values into field updates. Dates are read in loc,
// the zone records are loaded in, so an unchanged form resends the same
// instants.
func (d *FormDTO) Updates(reference []position.Position, loc *time.Location) []FieldUpdate {
	updates := []FieldUpdate{
		TitleUpdate{Value: d.Title},
		TypeUpdate{Value: d.Type},
	}

	var dr *DateRange
	if start, end, ok := d.dates(loc); ok {
		if r, err := NewDateRange(start, end); err == nil {
			dr = &r
		}
	}
	updates = append(updates, DateRangeUpdate{Range: dr})

	return append(updates, PositionsUpdate{Positions: d.SelectedPositions(reference)})
}

// SelectedPositions resolves PositionIDs in order, held positions first, then
// reference. Unknown and repeated IDs are dropped.
func (d *FormDTO) SelectedPositions(reference []position.Position) []position.Position {
	held := position.Index(d.HeldPositions())
	known := position.Index(reference)
	selected := make([]position.Position, 0, len(d.PositionIDs))
	seen := make(map[string]bool, len(d.PositionIDs))
	for _, id := range d.PositionIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := held[id]; ok {
			selected = append(selected, p)
			continue
		}
		if p, ok := known[id]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}

// FormToDTO renders f back into posted values.
func FormToDTO(token string, f Form) FormDTO {
	dto := FormDTO{
		FormToken:   token,
		Title:       f.Title,
		Type:        f.Type,
		PositionIDs: position.IDs(f.Positions),
	}
	if f.DateRange != nil {
		dto.StartDate = f.DateRange.Start().Format(constants.DateFormat)
		dto.EndDate = f.DateRange.End().Format(constants.DateFormat)
	}
	if len(f.Positions) > 0 {
		if raw, err := json.Marshal(f.Positions); err == nil {
			dto.PositionsJSON = string(raw)
		}
	}
	return dto
}
