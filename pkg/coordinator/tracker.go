package coordinator

import (
	"context"
	"sync"
)

// pass is one run over a list of fields. Its context is cancelled as soon
// as a newer pass starts.
type pass struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func (p *pass) stale() bool {
	return p.ctx.Err() != nil
}

type fieldRun struct {
	id     uint64
	cancel context.CancelFunc
}

// tracker implements the cancel-predecessor policy. A new pass cancels the
// previous pass and every single field run; a single field run cancels the
// previous run of the same field only.
type tracker struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	fields map[string]fieldRun
}

func newTracker() *tracker {
	return &tracker{fields: make(map[string]fieldRun)}
}

func (t *tracker) begin(ctx context.Context) *pass {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	t.seq++
	pctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	return &pass{id: t.seq, ctx: pctx, cancel: cancel}
}

func (t *tracker) beginField(ctx context.Context, key string) *pass {
	t.mu.Lock()
	defer t.mu.Unlock()

	if run, ok := t.fields[key]; ok {
		run.cancel()
	}
	t.seq++
	fctx, cancel := context.WithCancel(ctx)
	t.fields[key] = fieldRun{id: t.seq, cancel: cancel}
	return &pass{id: t.seq, ctx: fctx, cancel: cancel}
}

// endField releases the run of key if p is still the latest one for it.
func (t *tracker) endField(key string, p *pass) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if run, ok := t.fields[key]; ok && run.id == p.id {
		delete(t.fields, key)
	}
	p.cancel()
}

// stop cancels everything in flight.
func (t *tracker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *tracker) cancelLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	for key, run := range t.fields {
		run.cancel()
		delete(t.fields, key)
	}
}
