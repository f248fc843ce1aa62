package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/forms"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/mappers"
	periodsui "github.com/iota-uz/iota-periods/modules/periods/presentation/templates/pages/periods"
	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
	"github.com/iota-uz/iota-periods/modules/periods/services"
	"github.com/iota-uz/iota-periods/pkg/application"
	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/httpapi"
	"github.com/iota-uz/iota-periods/pkg/intl"
	"github.com/iota-uz/iota-periods/pkg/middleware"
	"github.com/iota-uz/iota-periods/pkg/shared"
	"github.com/iota-uz/iota-periods/pkg/spotlight"
)

const defaultFlashKey = "flash"

type PeriodController struct {
	app             application.Application
	periodService   *services.PeriodService
	positionService *services.PositionService
	positionsStore  *services.PositionsStore
	guard           *forms.SubmitGuard
	basePath        string
	flashKey        string
	location        *time.Location
}

// NewPeriodController serves the period pages. Posted dates are read in loc,
// the zone the remote API's dates are shown in.
func NewPeriodController(app application.Application, flashKey string, loc *time.Location) application.Controller {
	if flashKey == "" {
		flashKey = defaultFlashKey
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PeriodController{
		app:             app,
		periodService:   app.Service(services.PeriodService{}).(*services.PeriodService),
		positionService: app.Service(services.PositionService{}).(*services.PositionService),
		positionsStore:  app.Service(services.PositionsStore{}).(*services.PositionsStore),
		guard:           forms.NewSubmitGuard(),
		basePath:        "/periods",
		flashKey:        flashKey,
		location:        loc,
	}
}

func (c *PeriodController) Key() string {
	return c.basePath
}

func (c *PeriodController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideLocalizer(c.app),
		middleware.NavItems(c.app),
		middleware.WithPageContext(),
	}
	getRouter := r.PathPrefix(c.basePath).Subrouter()
	getRouter.Use(commonMiddleware...)
	getRouter.HandleFunc("", c.List).Methods(http.MethodGet)
	getRouter.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	getRouter.HandleFunc("/api/positions:options", c.PositionOptions).Methods(http.MethodGet)
	getRouter.HandleFunc("/{id}", c.GetEdit).Methods(http.MethodGet)

	setRouter := r.PathPrefix(c.basePath).Subrouter()
	setRouter.Use(commonMiddleware...)
	setRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	setRouter.HandleFunc("/form/fields", c.ApplyFields).Methods(http.MethodPost)
	setRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPost)
}

func (c *PeriodController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flash, err := composables.UseFlashMap[string, string](w, r, c.flashKey)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Debug("ignoring malformed flash cookie")
	}
	props := &periodsui.IndexPageProps{
		NewURL:        c.basePath + "/new",
		Notifications: flashNotifications(flash),
	}

	records, err := c.periodService.GetAll(ctx)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to list periods")
		props.Notifications = append(props.Notifications, viewmodels.Notification{
			Kind:    viewmodels.NotificationError,
			Message: intl.Localize(ctx, services.MsgLoadFailed, nil),
		})
	}
	props.Periods = mappers.PeriodsToViewModels(c.basePath, records)

	if shared.IsHxRequest(r) {
		templ.Handler(periodsui.PeriodsTable(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(periodsui.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *PeriodController) GetNew(w http.ResponseWriter, r *http.Request) {
	c.getForm(w, r, "")
}

func (c *PeriodController) GetEdit(w http.ResponseWriter, r *http.Request) {
	c.getForm(w, r, mux.Vars(r)["id"])
}

func (c *PeriodController) Create(w http.ResponseWriter, r *http.Request) {
	c.submit(w, r, "")
}

func (c *PeriodController) Update(w http.ResponseWriter, r *http.Request) {
	c.submit(w, r, mux.Vars(r)["id"])
}

func (c *PeriodController) newForm(id, token string, fb *feedback) *forms.PeriodEditForm {
	if token == "" {
		token = uuid.NewString()
	}
	return forms.NewPeriodEditForm(forms.Options{
		ID:        id,
		Token:     token,
		Periods:   c.periodService,
		Positions: c.positionService,
		Guard:     c.guard,
		Notifier:  fb,
		Navigator: fb,
		ListPath:  c.basePath,
	})
}

func (c *PeriodController) getForm(w http.ResponseWriter, r *http.Request, id string) {
	fb := &feedback{}
	form := c.newForm(id, "", fb)
	if err := form.Init(r.Context()); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("period form loaded with errors")
	}
	c.renderForm(w, r, form, fb, http.StatusOK)
}

// reference returns the positions list, loading it when no load succeeded yet.
func (c *PeriodController) reference(r *http.Request) []position.Position {
	snap := c.positionsStore.Snapshot()
	if snap.Phase == services.PhaseReady {
		return snap.Positions
	}
	if _, err := c.positionService.Load(r.Context()); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("positions unavailable")
	}
	return c.positionsStore.Positions()
}

func (c *PeriodController) submit(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	dto, err := composables.UseForm(&period.FormDTO{}, r)
	if err != nil {
		http.Error(w, errors.Wrap(err, "invalid form body").Error(), http.StatusBadRequest)
		return
	}

	fb := &feedback{}
	form := c.newForm(id, dto.FormToken, fb)
	form.Apply(dto.Updates(c.reference(r), c.location)...)
	if errs, ok := dto.Ok(ctx); !ok {
		form.SetErrors(period.FormErrors(errs))
		fb.Error(intl.Localize(ctx, services.MsgInvalidForm, nil))
		c.renderForm(w, r, form, fb, http.StatusUnprocessableEntity)
		return
	}

	err = form.Submit(ctx)
	if target, ok := fb.navigation(); err == nil && ok {
		shared.SetFlashMap(w, c.flashKey, fb.flash())
		shared.Redirect(w, r, target)
		return
	}
	if errors.Is(err, forms.ErrSubmitInFlight) {
		c.renderForm(w, r, form, fb, http.StatusConflict)
		return
	}
	c.renderForm(w, r, form, fb, http.StatusUnprocessableEntity)
}

// ApplyFields re-renders the form with the posted values, used by the
// quick-fill buttons. Nothing is validated or sent.
func (c *PeriodController) ApplyFields(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&period.FormDTO{}, r)
	if err != nil {
		http.Error(w, errors.Wrap(err, "invalid form body").Error(), http.StatusBadRequest)
		return
	}
	fb := &feedback{}
	form := c.newForm(r.URL.Query().Get("id"), dto.FormToken, fb)
	form.Apply(dto.Updates(c.reference(r), c.location)...)
	c.renderForm(w, r, form, fb, http.StatusOK)
}

type positionOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PositionOptions serves the positions picker, fuzzy matched on name by ?q=.
// htmx requests get <option> elements for the picker: the posted selection
// first, then the matches. Other callers get JSON.
func (c *PeriodController) PositionOptions(w http.ResponseWriter, r *http.Request) {
	items := c.reference(r)
	if snap := c.positionsStore.Snapshot(); snap.Phase == services.PhaseFailed && len(items) == 0 {
		_ = httpapi.WriteError(w, r, http.StatusBadGateway, "POSITIONS_UNAVAILABLE", snap.Error)
		return
	}

	matched := spotlight.Find(r.URL.Query().Get("q"), items, func(p position.Position) string {
		return p.Name
	})

	if shared.IsHxRequest(r) {
		dto, err := composables.UseQuery(&period.FormDTO{}, r)
		if err != nil {
			http.Error(w, errors.Wrap(err, "invalid query").Error(), http.StatusBadRequest)
			return
		}
		options := mappers.PositionOptions(dto.SelectedPositions(items), matched)
		templ.Handler(periodsui.PositionOptionList(options)).ServeHTTP(w, r)
		return
	}

	out := make([]positionOption, 0, len(matched))
	for _, p := range matched {
		out = append(out, positionOption{ID: p.ID, Name: p.Name})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *PeriodController) renderForm(w http.ResponseWriter, r *http.Request, form *forms.PeriodEditForm, fb *feedback, status int) {
	postPath := c.basePath
	fieldsURL := c.basePath + "/form/fields"
	if form.IsEdit() {
		postPath = c.basePath + "/" + url.PathEscape(form.ID())
		fieldsURL += "?id=" + url.QueryEscape(form.ID())
	}
	props := &periodsui.FormPageProps{
		Form:          mappers.FormToViewModel(form.Token(), form.ID(), form.State(), c.positionsStore.Positions()),
		Errors:        form.Errors(),
		Notifications: fb.notifications(),
		PostPath:      postPath,
		BackURL:       c.basePath,
		FieldsURL:     fieldsURL,
		PositionsURL:  c.basePath + "/api/positions:options",
		Presets:       period.TypePresets,
		Submitting:    form.Submitting(),
	}
	if shared.IsHxRequest(r) {
		// htmx only swaps 2xx responses
		templ.Handler(periodsui.Form(props), templ.WithStatus(http.StatusOK)).ServeHTTP(w, r)
		return
	}
	templ.Handler(periodsui.Edit(props), templ.WithStatus(status)).ServeHTTP(w, r)
}
