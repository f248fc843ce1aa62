package period

import (
	"strings"
	"time"
	"unicode"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

// Suggested values offered next to the type input.
const (
	TypeStaff = "STAFF"
	TypeDosen = "DOSEN"
)

var TypePresets = []string{TypeStaff, TypeDosen}

// Record is a period as stored by the remote API.
type Record struct {
	ID        string
	Title     string
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Positions []position.Position
}

// DisplayType renders a stored type for humans: "STAFF" -> "Staff".
func DisplayType(t string) string {
	if t == "" {
		return ""
	}
	lower := []rune(strings.ToLower(t))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}
