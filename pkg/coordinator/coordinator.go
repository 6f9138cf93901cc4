package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/beast/pkg/async"
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/validator"
)

var (
	ErrFieldNotFound = errors.New("coordinator: field not found")
	ErrSuperseded    = errors.New("coordinator: validation superseded")
)

// Coordinator runs validation passes over one form.
type Coordinator struct {
	form     *form.Form
	engine   *validator.Engine
	renderer Renderer
	logger   *slog.Logger

	focusFirst bool
	summary    bool
	onFail     func([]validator.Verdict)
	onSuccess  func(map[string]any)
	submitter  Submitter

	tracker *tracker
	// renderMu makes the staleness check and the write to the renderer
	// atomic, so a cancelled pass cannot draw after its successor cleared
	// the surface.
	renderMu sync.Mutex
}

// New creates a coordinator. A nil renderer discards all output.
func New(f *form.Form, engine *validator.Engine, renderer Renderer, opts ...Option) *Coordinator {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	c := &Coordinator{
		form:       f,
		engine:     engine,
		renderer:   renderer,
		logger:     logger.Discard(),
		focusFirst: true,
		tracker:    newTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("coordinator"), logger.Form(f.ID()))
	return c
}

// RunAll validates every enabled field of the form. On success it clears
// the summary, calls the success hook and submits the form data.
func (c *Coordinator) RunAll(ctx context.Context) Result {
	return c.run(ctx, "all", true, func(snap form.Snapshot) []form.Field {
		return snap.Fields()
	})
}

// RunSubset validates the fields at the given document indexes.
func (c *Coordinator) RunSubset(ctx context.Context, indexes ...int) Result {
	return c.run(ctx, "subset", false, func(snap form.Snapshot) []form.Field {
		var fields []form.Field
		for _, field := range snap.Fields() {
			if slices.Contains(indexes, field.Index) {
				fields = append(fields, field)
			}
		}
		return fields
	})
}

// RunStep validates the fields of one wizard step.
func (c *Coordinator) RunStep(ctx context.Context, step int) Result {
	return c.run(ctx, fmt.Sprintf("step %d", step), false, func(snap form.Snapshot) []form.Field {
		return snap.InStep(step)
	})
}

func (c *Coordinator) run(ctx context.Context, scope string, full bool, pick func(form.Snapshot) []form.Field) Result {
	p := c.tracker.begin(ctx)
	defer p.cancel()
	start := time.Now()
	log := c.logger.With(logger.Pass(p.id), slog.String("scope", scope))

	c.renderMu.Lock()
	c.renderer.ClearAll()
	c.renderMu.Unlock()

	snap := c.form.Snapshot()
	fields := selectFields(pick(snap))

	futures := make([]*async.Future[validator.Verdict], len(fields))
	for i, field := range fields {
		futures[i] = async.Async(p.ctx, field, func(ctx context.Context, field form.Field) (validator.Verdict, error) {
			verdict, err := c.engine.Evaluate(ctx, field, snap)
			if err != nil {
				return verdict, err
			}
			c.render(p, verdict)
			return verdict, nil
		})
	}

	verdicts, err := async.WaitAll(futures...)
	if err != nil || p.stale() {
		log.DebugContext(ctx, "pass superseded", logger.Error(err))
		return Result{Superseded: true}
	}

	res := aggregate(verdicts)

	c.renderMu.Lock()
	if p.stale() {
		c.renderMu.Unlock()
		log.DebugContext(ctx, "pass superseded")
		return Result{Superseded: true}
	}
	if res.Valid {
		c.renderer.ClearSummary()
	} else {
		if c.focusFirst {
			c.renderer.Focus(*res.FirstInvalid)
		}
		if c.summary {
			c.renderer.RenderSummary(res.Failed)
		}
	}
	c.renderMu.Unlock()

	log.DebugContext(ctx, "pass finished",
		slog.Int("fields", len(fields)),
		slog.Int("failed", len(res.Failed)),
		slog.Bool("valid", res.Valid),
		logger.Duration(time.Since(start)))

	switch {
	case !res.Valid:
		if c.onFail != nil {
			c.onFail(res.Failed)
		}
	case full:
		data := snap.Data()
		if c.onSuccess != nil {
			c.onSuccess(data)
		}
		if c.submitter != nil {
			c.submitter.Submit(ctx, data)
		}
	}

	return res
}

// ValidateField validates a single field, as on change and input events.
// It cancels an in-flight evaluation of the same field but leaves other
// fields and any running pass alone. Disabled fields are reported valid.
func (c *Coordinator) ValidateField(ctx context.Context, index int) (validator.Verdict, error) {
	field, ok := c.form.Field(index)
	if !ok {
		return validator.Verdict{}, fmt.Errorf("%w: index %d", ErrFieldNotFound, index)
	}
	if field.Disabled {
		return validator.Verdict{Valid: true, Field: field, Target: field}, nil
	}

	p := c.tracker.beginField(ctx, field.ID)
	defer c.tracker.endField(field.ID, p)

	verdict, err := c.engine.Evaluate(p.ctx, field, c.form.Snapshot())
	if err != nil {
		return verdict, errors.Join(ErrSuperseded, err)
	}
	if !c.render(p, verdict) {
		return verdict, ErrSuperseded
	}
	return verdict, nil
}

// Reset cancels everything in flight, clears the rendered output and the
// dirty flags of the form.
func (c *Coordinator) Reset() {
	c.tracker.stop()

	c.renderMu.Lock()
	c.renderer.ClearAll()
	c.renderer.ClearSummary()
	c.renderMu.Unlock()

	c.form.ResetDirty()
}

// render applies the per-field side effects of a verdict unless p has been
// superseded. It reports whether anything was drawn.
func (c *Coordinator) render(p *pass, v validator.Verdict) bool {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if p.stale() {
		return false
	}

	c.renderer.ClearField(v.Field)
	if v.Valid {
		c.renderer.MarkValid(v.Field)
		c.form.ClearDirty(v.Field.Index)
		return true
	}
	c.renderer.RenderError(v.Field, v.Target, v.Message)
	c.form.MarkDirty(v.Field.Index)
	return true
}

// selectFields drops disabled fields and keeps only the first member of
// each radio group.
func selectFields(fields []form.Field) []form.Field {
	out := make([]form.Field, 0, len(fields))
	radios := make(map[string]bool)
	for _, field := range fields {
		if field.Disabled {
			continue
		}
		if field.Type == form.TypeRadio {
			if radios[field.ID] {
				continue
			}
			radios[field.ID] = true
		}
		out = append(out, field)
	}
	return out
}
