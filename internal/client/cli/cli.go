package cli

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/client/cache"
	"github.com/iudanet/patientdesk/internal/client/fields"
	"github.com/iudanet/patientdesk/internal/client/filters"
	"github.com/iudanet/patientdesk/internal/client/iocli"
	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/client/session"
	"github.com/iudanet/patientdesk/internal/config"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/validation"
)

// closeTimeout ограничивает ожидание неотправленных правок при выходе из edit
const closeTimeout = 10 * time.Second

// Deps зависимости команд
type Deps struct {
	IO       iocli.IO
	Patients patients.Service
	Fields   fields.Service
	Cache    *cache.QueryCache
	Config   *config.Config
	Logger   zerolog.Logger
}

type Cli struct {
	io       iocli.IO
	patients patients.Service
	fields   fields.Service
	cache    *cache.QueryCache
	cfg      *config.Config
	now      func() time.Time
	logger   zerolog.Logger

	// используются тестами для детерминированного debounce
	sessionOpts []session.Option
	filterOpts  []filters.Option
}

func New(deps Deps) *Cli {
	return &Cli{
		io:       deps.IO,
		patients: deps.Patients,
		fields:   deps.Fields,
		cache:    deps.Cache,
		cfg:      deps.Config,
		now:      time.Now,
		logger:   deps.Logger,
	}
}

func (c *Cli) sessionOptions(onError func(error)) []session.Option {
	opts := []session.Option{session.WithErrorHandler(onError)}
	if c.cfg != nil {
		opts = append(opts, session.WithDebounce(c.cfg.Debounce))
	}
	return append(opts, c.sessionOpts...)
}

func (c *Cli) filterOptions(onChange func(filters.State)) []filters.Option {
	opts := []filters.Option{filters.WithOnChange(onChange), filters.WithLogger(c.logger)}
	if c.cfg != nil {
		opts = append(opts, filters.WithDelay(c.cfg.FilterDebounce))
	}
	return append(opts, c.filterOpts...)
}

// printError печатает ошибку так, как её увидит пользователь: ошибки формы по полям,
// остальные одной строкой.
func (c *Cli) printError(err error, resource string) {
	fe := formErrors(err)
	if len(fe) == 0 {
		c.io.Println(styles.Error.Render("Error: " + models.Describe(err, resource)))
		return
	}
	c.io.Println(styles.Error.Render("Please fix the following:"))
	for _, key := range fe.Keys() {
		c.io.Printf("  %s: %s\n", key, fe.Message(key))
	}
}

func formErrors(err error) validation.FormErrors {
	var fe validation.FormErrors
	if errors.As(err, &fe) {
		return fe
	}
	return validation.FormErrorsFromTransport(err)
}

// userError показывает пользователю текст баннера, сохраняя исходную ошибку для errors.As
type userError struct {
	err error
	msg string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func describe(err error, resource string) error {
	if fe := formErrors(err); len(fe) > 0 {
		return &userError{err: err, msg: fe.Error()}
	}
	return &userError{err: err, msg: models.Describe(err, resource)}
}

// closeContext отвязан от отмены ctx: правки отправляются даже после Ctrl+C, но не дольше closeTimeout.
func closeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
}
