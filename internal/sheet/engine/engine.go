package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/pipsheet/internal/platform/otel"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/roles"
	"github.com/louisbranch/pipsheet/internal/sheet/stats"
	"github.com/louisbranch/pipsheet/internal/sheet/storage"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/pipsheet/internal/sheet/engine"

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Key is the storage key of the sheet blob. Defaults to storage.DefaultKey.
	Key string
	// Binding maps roles to fields. Defaults to roles.DefaultBinding.
	Binding *roles.Binding
	// Confirmer gates reset and, with ConfirmSave, user saves. Nil approves
	// everything.
	Confirmer Confirmer
	// ConfirmSave asks before a user-requested save. Autosave never asks.
	ConfirmSave bool
	// ReloadAfterReset recomputes defaults after a confirmed reset, the
	// way a page reload would.
	ReloadAfterReset bool
	ResetPrompt      string
	SavePrompt       string
	// Logf receives diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Engine recomputes derived stats and persists one sheet.
type Engine struct {
	tree    *form.Tree
	reg     *roles.Registry
	binding roles.Binding
	store   storage.BlobStore
	key     string
	opts    Options
	logf    func(format string, args ...any)
	tracer  trace.Tracer

	syncing guard
	quiet   guard
	resetG  gate
	saveG   gate

	started     bool
	unsubscribe []func()
}

// New binds an engine to tree and store.
func New(tree *form.Tree, store storage.BlobStore, opts Options) (*Engine, error) {
	if tree == nil {
		return nil, fmt.Errorf("form tree is required")
	}
	if store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	key := opts.Key
	if key == "" {
		key = storage.DefaultKey
	}
	key, err := storage.NormalizeKey(key)
	if err != nil {
		return nil, err
	}
	binding := roles.DefaultBinding()
	if opts.Binding != nil {
		binding = *opts.Binding
	}
	if opts.ResetPrompt == "" {
		opts.ResetPrompt = DefaultResetPrompt
	}
	if opts.SavePrompt == "" {
		opts.SavePrompt = DefaultSavePrompt
	}
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Engine{
		tree:    tree,
		reg:     roles.Resolve(tree, binding),
		binding: binding,
		store:   store,
		key:     key,
		opts:    opts,
		logf:    logf,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Tree returns the bound form tree.
func (e *Engine) Tree() *form.Tree { return e.tree }

// Start wires change handlers, loads the saved sheet and runs a full
// recomputation. Calling Start twice is a no-op.
func (e *Engine) Start(ctx context.Context) {
	if e.started {
		return
	}
	e.started = true
	if missing := e.reg.Missing(e.binding); len(missing) > 0 {
		e.logf("sheet fields not found, dependent stats skipped: %v", missing)
	}
	e.subscribe()
	e.reg.Set(roles.XPToNext, stats.FormatInt(stats.InitialXPToNext))
	e.Load(ctx)
	e.Recompute()
}

// Stop removes every change handler registered by Start.
func (e *Engine) Stop() {
	for _, unsubscribe := range e.unsubscribe {
		unsubscribe()
	}
	e.unsubscribe = nil
	e.started = false
}

func (e *Engine) subscribe() {
	on := func(field *form.Field, fn func(*form.Field)) {
		if field == nil {
			return
		}
		e.unsubscribe = append(e.unsubscribe, e.tree.Subscribe(field, func(changed *form.Field) {
			// Bulk writes by load and reset recompute once at the end.
			if e.quiet.active() {
				return
			}
			fn(changed)
		}))
	}

	on(e.reg.Field(roles.Strength), func(*form.Field) {
		e.UpdateMaxCarryWeight()
		e.UpdateMeleeDamage()
		e.CurrentCarryWeight()
	})
	for _, role := range []roles.Role{roles.Endurance, roles.Luck, roles.Agility, roles.Perception} {
		on(e.reg.Field(role), func(*form.Field) { e.UpdateDerivedStats() })
	}
	on(e.reg.Field(roles.EarnedXP), func(*form.Field) { e.UpdateLevel() })
	for _, item := range e.reg.WeightItems {
		on(item, func(*form.Field) { e.CurrentCarryWeight() })
	}
	for _, member := range e.reg.CarryModifiers {
		on(member, e.SyncModifiers)
	}
}

// muted runs fn with change handlers silenced.
func (e *Engine) muted(fn func()) {
	release, _ := e.quiet.enter()
	defer release()
	fn()
}
