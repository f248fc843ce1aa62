package periods

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/iota-periods/pkg/types"
)

var PeriodsLink = types.NavigationItem{
	Name: "NavigationLinks.Periods",
	Href: "/periods",
	Icon: icons.CalendarBlank(icons.Props{Size: "20"}),
}

var NavItems = []types.NavigationItem{PeriodsLink}
