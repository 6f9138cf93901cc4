package forms

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/beast/handler"
	"github.com/dmitrymomot/beast/pkg/coordinator"
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/ui"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// DefaultSummaryTarget is the id of the summary element patched into pages.
const DefaultSummaryTarget = "beast-summary"

// Service validates submitted forms against the definitions of a catalog
// with the same rules the browser runs.
type Service struct {
	catalog       *form.Catalog
	validators    validator.Validators
	translator    *i18n.Translator
	logger        *slog.Logger
	errorHandler  handler.ErrorHandler
	summaryTarget string
	boardOptions  []ui.Option
	validateMW    []func(http.Handler) http.Handler
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithSummaryTarget sets the element id receiving the error summary.
func WithSummaryTarget(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.summaryTarget = id
		}
	}
}

// WithBoardOptions customizes the classes of rendered error nodes.
func WithBoardOptions(opts ...ui.Option) Option {
	return func(s *Service) {
		s.boardOptions = append(s.boardOptions, opts...)
	}
}

// WithValidationMiddleware wraps the two validation routes, after the form
// and field route parameters are resolved.
func WithValidationMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Service) {
		s.validateMW = append(s.validateMW, mw...)
	}
}

// NewService creates the forms service. translator may be nil, in which
// case built-in English messages are used.
func NewService(catalog *form.Catalog, validators validator.Validators, translator *i18n.Translator, opts ...Option) *Service {
	s := &Service{
		catalog:       catalog,
		validators:    validators,
		translator:    translator,
		logger:        logger.Discard(),
		summaryTarget: DefaultSummaryTarget,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	s.logger = s.logger.With(logger.Component("forms"))
	return s
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", handler.Wrap(s.list, nil, s.errorHandler))
	r.Get("/{form}", handler.Wrap(s.definition, s.bindDefinition, s.errorHandler))
	r.With(s.validateMW...).Post("/{form}/validate", handler.Wrap(s.validate, s.bindSubmission, s.errorHandler))
	r.With(s.validateMW...).Post("/{form}/fields/{field}", handler.Wrap(s.validateField, s.bindFieldSubmission, s.errorHandler))
	return r
}

// submission is a bound request: the definition and the form rebuilt from
// the submitted values.
type submission struct {
	def   form.Definition
	form  *form.Form
	field string
}

func (s *Service) lookup(r *http.Request) (form.Definition, error) {
	def, ok := s.catalog.Get(chi.URLParam(r, "form"))
	if !ok {
		return form.Definition{}, handler.ErrNotFound
	}
	return def, nil
}

func (s *Service) bindDefinition(r *http.Request) (form.Definition, error) {
	return s.lookup(r)
}

func (s *Service) bindSubmission(r *http.Request) (submission, error) {
	def, err := s.lookup(r)
	if err != nil {
		return submission{}, err
	}
	f, err := form.Bind(r, def)
	if err != nil {
		return submission{}, err
	}
	return submission{def: def, form: f}, nil
}

func (s *Service) bindFieldSubmission(r *http.Request) (submission, error) {
	sub, err := s.bindSubmission(r)
	if err != nil {
		return submission{}, err
	}
	sub.field = chi.URLParam(r, "field")
	if _, ok := sub.form.FieldByName(sub.field); !ok {
		return submission{}, handler.ErrNotFound
	}
	return sub, nil
}

func (s *Service) list(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(s.catalog.IDs())
}

func (s *Service) definition(_ handler.Context, def form.Definition) handler.Response {
	return handler.JSON(def)
}

// engine builds a validation engine speaking the request language.
func (s *Service) engine(ctx handler.Context) (*validator.Engine, string) {
	opts := []validator.Option{validator.WithLogger(s.logger)}
	lang := i18n.DefaultLanguage
	if s.translator != nil {
		lang = i18n.LocaleFromContext(ctx, s.translator.DefaultLanguage())
		opts = append(opts, validator.WithMessages(s.translator), validator.WithLanguage(lang))
	}
	return validator.NewEngine(s.validators, opts...), lang
}

func (s *Service) board(lang string) *ui.Board {
	opts := append([]ui.Option{ui.WithSummaryTarget(s.summaryTarget)}, s.boardOptions...)
	if s.translator != nil {
		opts = append(opts, ui.WithSummaryHeading(
			s.translator.Td(lang, "summary.heading", ui.DefaultSummaryHeading)))
	}
	return ui.NewBoard(opts...)
}

// validate runs a full pass. JSON clients receive the form data or a 422
// with every failed field; Datastar clients receive element patches for
// every error slot and the summary.
func (s *Service) validate(ctx handler.Context, sub submission) handler.Response {
	engine, lang := s.engine(ctx)
	board := s.board(lang)
	coord := coordinator.New(sub.form, engine, board,
		coordinator.WithSummary(true),
		coordinator.WithLogger(s.logger),
	)

	res := coord.RunAll(ctx)
	if res.Superseded {
		return handler.JSONError(errors.Join(coordinator.ErrSuperseded, ctx.Err()))
	}

	if handler.IsDataStar(ctx.Request()) || wantsHTML(ctx.Request()) {
		return patches(sub.form, board, s.summaryTarget, res.Valid)
	}
	if !res.Valid {
		return handler.JSONError(res.Errors())
	}
	return handler.JSON(sub.form.Data())
}

// validateField runs live validation of one field, as on change or input.
func (s *Service) validateField(ctx handler.Context, sub submission) handler.Response {
	engine, lang := s.engine(ctx)
	board := s.board(lang)
	coord := coordinator.New(sub.form, engine, board, coordinator.WithLogger(s.logger))

	field, _ := sub.form.FieldByName(sub.field)
	verdict, err := coord.ValidateField(ctx, field.Index)
	if err != nil {
		return handler.JSONError(err)
	}

	if handler.IsDataStar(ctx.Request()) || wantsHTML(ctx.Request()) {
		msg, _ := board.Message(field.ID)
		res := handler.Templ(ui.Slot(field.ID, slotClass(board), msg))
		if !verdict.Valid {
			res = handler.WithStatus(res, http.StatusUnprocessableEntity)
		}
		return res
	}
	if !verdict.Valid {
		return handler.JSONError(validator.FromVerdicts(verdict))
	}
	return handler.JSON(fieldResult{Field: field.Name, Valid: true})
}

type fieldResult struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
}

// patches renders one slot per field reference and the summary box.
func patches(f *form.Form, board *ui.Board, target string, valid bool) handler.Response {
	class := slotClass(board)
	seen := make(map[string]bool)
	var out []handler.TemplPatch
	for _, field := range f.Fields() {
		if seen[field.ID] {
			continue
		}
		seen[field.ID] = true
		msg, _ := board.Message(field.ID)
		out = append(out, handler.Patch(ui.Slot(field.ID, class, msg)))
	}

	if summary, ok := board.Summary(); ok && !valid {
		out = append(out, handler.Patch(ui.SummaryBox(summary)))
	} else {
		out = append(out, handler.Patch(ui.EmptySummary(target)))
	}

	res := handler.TemplMulti(out...)
	if !valid {
		res = handler.WithStatus(res, http.StatusUnprocessableEntity)
	}
	return res
}

func slotClass(board *ui.Board) string {
	return board.ErrorClass()
}

func wantsHTML(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/html"
}
