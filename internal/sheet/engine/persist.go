package engine

import (
	"context"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/roles"
	"github.com/louisbranch/pipsheet/internal/sheet/snapshot"
	"github.com/louisbranch/pipsheet/internal/sheet/stats"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Load restores the saved sheet into the form and recomputes derived stats.
// A missing, unreadable or malformed blob leaves the form untouched and
// reports ok == false.
func (e *Engine) Load(ctx context.Context) (snapshot.Snapshot, bool) {
	ctx, span := e.tracer.Start(ctx, "sheet.load")
	defer span.End()
	span.SetAttributes(attribute.String("sheet.key", e.key))

	data, found, err := e.store.Get(ctx, e.key)
	if err != nil {
		span.RecordError(err)
		e.logf("load sheet %s: %v", e.key, err)
		return nil, false
	}
	if !found {
		span.SetAttributes(attribute.Bool("sheet.found", false))
		return nil, false
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		span.RecordError(err)
		e.logf("load sheet %s: ignoring saved data: %v", e.key, err)
		return nil, false
	}

	var written int
	e.muted(func() { written = snapshot.Apply(e.tree, snap) })
	e.Recompute()

	span.SetAttributes(
		attribute.Bool("sheet.found", true),
		attribute.Int("sheet.keys", len(snap)),
		attribute.Int("sheet.fields_written", written),
	)
	return snap, true
}

// Save overwrites the stored blob with the current form state.
func (e *Engine) Save(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "sheet.save")
	defer span.End()

	snap := snapshot.Capture(e.tree)
	span.SetAttributes(attribute.String("sheet.key", e.key), attribute.Int("sheet.keys", len(snap)))

	data, err := snapshot.Encode(snap)
	if err == nil {
		err = e.store.Put(ctx, e.key, data)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return apperrors.Wrap(apperrors.CodeOf(err), "save sheet", err)
	}
	return nil
}

// RequestSave is the user-initiated save. With ConfirmSave it asks first;
// a repeated request while a question is open is ignored.
func (e *Engine) RequestSave(ctx context.Context) {
	if !e.opts.ConfirmSave || e.opts.Confirmer == nil {
		e.saveLogged(ctx)
		return
	}
	if !e.saveG.arm() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	e.opts.Confirmer.Confirm(e.opts.SavePrompt, func(yes bool) {
		if !e.saveG.disarm() || !yes {
			return
		}
		e.saveLogged(ctx)
	})
}

func (e *Engine) saveLogged(ctx context.Context) {
	if err := e.Save(ctx); err != nil {
		e.logf("%v", err)
	}
}

// RequestReset asks for confirmation and, on yes, wipes the saved sheet and
// the form. While the question is open further requests are ignored, and a
// no leaves everything as it was.
func (e *Engine) RequestReset(ctx context.Context) {
	if !e.resetG.arm() {
		return
	}
	if e.opts.Confirmer == nil {
		e.resolveReset(ctx, true)
		return
	}
	ctx = context.WithoutCancel(ctx)
	e.opts.Confirmer.Confirm(e.opts.ResetPrompt, func(yes bool) {
		e.resolveReset(ctx, yes)
	})
}

// ResetPending reports whether a reset confirmation is open.
func (e *Engine) ResetPending() bool { return e.resetG.armed }

func (e *Engine) resolveReset(ctx context.Context, yes bool) {
	if !e.resetG.disarm() || !yes {
		return
	}
	if err := e.Reset(ctx); err != nil {
		e.logf("%v", err)
	}
}

// Reset deletes the saved sheet and clears the form without asking:
// checkboxes are unchecked, carry modifiers return to their markup default
// (0 when none is set) and every other field is emptied.
func (e *Engine) Reset(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "sheet.reset")
	defer span.End()
	span.SetAttributes(attribute.String("sheet.key", e.key))

	err := e.store.Delete(ctx, e.key)
	if err != nil {
		span.RecordError(err)
		err = apperrors.Wrap(apperrors.CodeOf(err), "reset sheet", err)
	}

	e.muted(func() {
		for _, field := range e.tree.Fields() {
			switch {
			case field.Kind() == form.KindCheckbox:
				field.SetChecked(false)
			case e.reg.IsModifier(field):
				field.SetValue(modifierDefault(field))
			default:
				field.SetValue("")
			}
		}
	})

	if e.opts.ReloadAfterReset {
		e.reg.Set(roles.XPToNext, stats.FormatInt(stats.InitialXPToNext))
		e.Recompute()
	}
	return err
}

func modifierDefault(field *form.Field) string {
	if def := field.Default(); def != "" {
		return def
	}
	return "0"
}
