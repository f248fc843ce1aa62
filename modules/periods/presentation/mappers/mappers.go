package mappers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
	"github.com/iota-uz/iota-periods/pkg/constants"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

func PeriodToViewModel(basePath string, r period.Record) *viewmodels.Period {
	return &viewmodels.Period{
		ID:             r.ID,
		Title:          r.Title,
		Type:           r.Type,
		DisplayType:    period.DisplayType(r.Type),
		StartDate:      formatDate(r.StartDate),
		EndDate:        formatDate(r.EndDate),
		PositionsCount: len(r.Positions),
		EditURL:        fmt.Sprintf("%s/%s", basePath, url.PathEscape(r.ID)),
	}
}

func PeriodsToViewModels(basePath string, records []period.Record) []*viewmodels.Period {
	out := make([]*viewmodels.Period, 0, len(records))
	for _, r := range records {
		out = append(out, PeriodToViewModel(basePath, r))
	}
	return out
}

// PositionOptions lists the selected positions first, in their stored order,
// followed by the rest of reference.
func PositionOptions(selected, reference []position.Position) []viewmodels.PositionOption {
	out := make([]viewmodels.PositionOption, 0, len(selected)+len(reference))
	seen := make(map[string]bool, len(selected))
	for _, p := range selected {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, viewmodels.PositionOption{ID: p.ID, Name: positionName(p), Selected: true})
	}
	for _, p := range reference {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, viewmodels.PositionOption{ID: p.ID, Name: positionName(p)})
	}
	return out
}

func positionName(p position.Position) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func FormToViewModel(token, id string, f period.Form, reference []position.Position) *viewmodels.PeriodForm {
	dto := period.FormToDTO(token, f)
	return &viewmodels.PeriodForm{
		Token:         token,
		ID:            id,
		IsEdit:        id != "",
		Title:         dto.Title,
		Type:          dto.Type,
		DisplayType:   period.DisplayType(dto.Type),
		StartDate:     dto.StartDate,
		EndDate:       dto.EndDate,
		PositionsJSON: dto.PositionsJSON,
		Positions:     PositionOptions(f.Positions, reference),
	}
}
