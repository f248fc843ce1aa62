package viewmodels

type Period struct {
	ID             string
	Title          string
	Type           string
	DisplayType    string
	StartDate      string
	EndDate        string
	PositionsCount int
	EditURL        string
}

type PositionOption struct {
	ID       string
	Name     string
	Selected bool
}

// PeriodForm is what the edit page renders. Dates use the yyyy-mm-dd format
// of <input type="date">.
type PeriodForm struct {
	Token       string
	ID          string
	IsEdit      bool
	Title       string
	Type        string
	DisplayType string
	StartDate   string
	EndDate     string
	// PositionsJSON is echoed back on submit so held positions survive verbatim.
	PositionsJSON string
	Positions     []PositionOption
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	Kind    NotificationKind
	Message string
}
