package forms

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/modules/periods/services"
	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/intl"
)

const DefaultListPath = "/periods"

var (
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrInvalidForm    = errors.New("form has invalid fields")
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Navigator interface {
	Navigate(path string)
}

type discard struct{}

func (discard) Success(string)  {}
func (discard) Error(string)    {}
func (discard) Navigate(string) {}

type PeriodStore interface {
	GetByID(ctx context.Context, id string) (period.Record, error)
	Create(ctx context.Context, data period.Payload) error
	Update(ctx context.Context, id string, data period.Payload) error
}

type PositionLoader interface {
	Load(ctx context.Context) ([]position.Position, error)
}

type Options struct {
	// ID of the period being edited; empty in create mode.
	ID string
	// Token identifies this form instance for SubmitGuard. Defaults to ID.
	Token     string
	Periods   PeriodStore
	Positions PositionLoader
	Guard     *SubmitGuard
	Notifier  Notifier
	Navigator Navigator
	// ListPath is where a successful save navigates to.
	ListPath string
}

// PeriodEditForm creates or edits one period. Whether Submit creates or
// updates depends only on the ID it was built with.
type PeriodEditForm struct {
	opts Options

	mu     sync.Mutex
	state  period.Form
	errors period.FormErrors
}

func NewPeriodEditForm(opts Options) *PeriodEditForm {
	if opts.Guard == nil {
		opts.Guard = NewSubmitGuard()
	}
	if opts.Token == "" {
		opts.Token = opts.ID
	}
	if opts.ListPath == "" {
		opts.ListPath = DefaultListPath
	}
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	if opts.Navigator == nil {
		opts.Navigator = discard{}
	}
	return &PeriodEditForm{
		opts:   opts,
		errors: period.FormErrors{},
	}
}

func (f *PeriodEditForm) ID() string {
	return f.opts.ID
}

func (f *PeriodEditForm) Token() string {
	return f.opts.Token
}

func (f *PeriodEditForm) IsEdit() bool {
	return f.opts.ID != ""
}

func (f *PeriodEditForm) State() period.Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *PeriodEditForm) Errors() period.FormErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Apply replaces one field and clears the error reported for it.
func (f *PeriodEditForm) Apply(updates ...period.FieldUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range updates {
		f.state = f.state.With(u)
		delete(f.errors, u.Field())
	}
}

func (f *PeriodEditForm) SetErrors(errs period.FormErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = errs.Clone()
}

// Submitting reports whether a submission of this form is in flight.
func (f *PeriodEditForm) Submitting() bool {
	return f.opts.Guard.Held(f.opts.Token)
}

// Init loads the positions list and, in edit mode, the record. Both run
// concurrently. Failures are reported through the Notifier and returned
// joined; the form stays usable either way. A record arriving after ctx is
// done is dropped.
func (f *PeriodEditForm) Init(ctx context.Context) error {
	logger := composables.UseLogger(ctx)
	var (
		g      errgroup.Group
		errMu  sync.Mutex
		errs   error
		record = func(err error) {
			errMu.Lock()
			errs = multierr.Append(errs, err)
			errMu.Unlock()
		}
	)

	if f.opts.Positions != nil {
		g.Go(func() error {
			if _, err := f.opts.Positions.Load(ctx); err != nil {
				f.opts.Notifier.Error(services.FailureMessage(ctx, err))
				record(err)
			}
			return nil
		})
	}

	if f.IsEdit() {
		g.Go(func() error {
			rec, err := f.opts.Periods.GetByID(ctx, f.opts.ID)
			if ctx.Err() != nil {
				record(ctx.Err())
				return nil
			}
			if err != nil {
				logger.WithError(err).WithField("id", f.opts.ID).Warn("failed to load period")
				f.opts.Notifier.Error(intl.Localize(ctx, services.MsgLoadFailed, nil))
				record(err)
				return nil
			}
			f.mu.Lock()
			var ok bool
			f.state, ok = f.state.WithRecord(rec)
			f.mu.Unlock()
			if !ok {
				logger.WithField("id", f.opts.ID).Info("period has no usable date range")
			}
			return nil
		})
	}

	_ = g.Wait()
	return errs
}

// Submit validates the form and sends it. On success the user is notified and
// sent to the list page exactly once; on failure the message from the API, or
// a generic one, is shown and the form stays as it was.
func (f *PeriodEditForm) Submit(ctx context.Context) error {
	release, ok := f.opts.Guard.Acquire(f.opts.Token)
	if !ok {
		f.opts.Notifier.Error(intl.Localize(ctx, services.MsgSubmitInFlight, nil))
		return ErrSubmitInFlight
	}
	defer release()

	state := f.State()
	if errs := state.Validate(ctx); len(errs) > 0 {
		f.SetErrors(errs)
		f.opts.Notifier.Error(intl.Localize(ctx, services.MsgInvalidForm, nil))
		return ErrInvalidForm
	}
	payload, err := state.Payload()
	if err != nil {
		return errors.Wrap(err, "build payload")
	}

	msg := services.MsgCreated
	if f.IsEdit() {
		msg = services.MsgUpdated
		err = f.opts.Periods.Update(ctx, f.opts.ID, payload)
	} else {
		err = f.opts.Periods.Create(ctx, payload)
	}
	if err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("id", f.opts.ID).Warn("failed to save period")
		f.opts.Notifier.Error(services.FailureMessage(ctx, err))
		return err
	}

	f.SetErrors(period.FormErrors{})
	f.opts.Notifier.Success(intl.Localize(ctx, msg, nil))
	f.opts.Navigator.Navigate(f.opts.ListPath)
	return nil
}
