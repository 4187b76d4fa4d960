package engine

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/storage/memory"
)

var primaryNames = []string{
	"strengthStat", "enduranceStat", "luckStat", "agilityStat", "perceptionStat",
	"xpEarned", "charLevel",
}

var derivedNames = []string{
	"meleeDamageValue", "maxHP", "luckPoints", "defenseValue", "initiativeValue", "xpToNext",
	"maxCarryWeight1", "maxCarryWeight2", "currentCarryWeight1", "currentCarryWeight2",
}

func newTestTree(t *testing.T) *form.Tree {
	t.Helper()
	tree := form.NewTree()
	for _, name := range primaryNames {
		tree.MustAdd(form.Spec{Name: name})
	}
	for _, name := range []string{"meleeDamageValue", "maxHP", "luckPoints", "defenseValue", "initiativeValue", "xpToNext"} {
		tree.MustAdd(form.Spec{Name: name})
	}
	tree.MustAdd(form.Spec{Name: "carryMod", Tags: []form.Tag{form.TagCarryModifier}, Default: "0"})
	tree.MustAdd(form.Spec{Name: "maxCarryWeight1", Tags: []form.Tag{form.TagCapacityTotal}})
	tree.MustAdd(form.Spec{Name: "currentCarryWeight1", Tags: []form.Tag{form.TagCurrentWeightTotal}})
	tree.MustAdd(form.Spec{Name: "weaponWeight1", Tags: []form.Tag{form.TagWeight}})
	tree.MustAdd(form.Spec{Name: "weaponWeight2", Tags: []form.Tag{form.TagWeight}})
	tree.MustAdd(form.Spec{Name: "apparelWeight1", Tags: []form.Tag{form.TagWeight}})
	tree.MustAdd(form.Spec{Name: "carryMod", Tags: []form.Tag{form.TagCarryModifier}, Default: "0"})
	tree.MustAdd(form.Spec{Name: "maxCarryWeight2", Tags: []form.Tag{form.TagCapacityTotal}})
	tree.MustAdd(form.Spec{Name: "currentCarryWeight2", Tags: []form.Tag{form.TagCurrentWeightTotal}})
	tree.MustAdd(form.Spec{Name: "perkToughness", Kind: form.KindCheckbox})
	tree.MustAdd(form.Spec{Name: "notes", Tags: []form.Tag{form.TagTooltip}})
	return tree
}

type logRecorder struct {
	lines []string
}

func (r *logRecorder) logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

type harness struct {
	tree   *form.Tree
	store  *memory.Store
	engine *Engine
	logs   *logRecorder
}

func newHarness(t *testing.T, store *memory.Store, opts Options) *harness {
	t.Helper()
	if store == nil {
		store = memory.New()
	}
	logs := &logRecorder{}
	if opts.Logf == nil {
		opts.Logf = logs.logf
	}
	tree := newTestTree(t)
	engine, err := New(tree, store, opts)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.Start(context.Background())
	return &harness{tree: tree, store: store, engine: engine, logs: logs}
}

func (h *harness) set(name, value string) {
	h.tree.First(name).SetValue(value)
}

func (h *harness) value(name string) string {
	return h.tree.First(name).Value()
}

func (h *harness) values(t *testing.T, names ...string) map[string]string {
	t.Helper()
	out := make(map[string]string, len(names))
	for _, name := range names {
		field := h.tree.First(name)
		if field == nil {
			t.Fatalf("field %s missing from test tree", name)
		}
		out[name] = field.Value()
	}
	return out
}

func (h *harness) expect(t *testing.T, name, want string) {
	t.Helper()
	if got := h.value(name); got != want {
		t.Fatalf("%s = %q, want %q", name, got, want)
	}
}

// pendingConfirmer holds each decision until the test resolves it.
type pendingConfirmer struct {
	prompts []string
	decide  func(bool)
}

func (c *pendingConfirmer) Confirm(prompt string, decide func(bool)) {
	c.prompts = append(c.prompts, prompt)
	c.decide = decide
}

// faultyStore fails the configured operations.
type faultyStore struct {
	*memory.Store
	getErr error
	putErr error
	delErr error
}

func (s *faultyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.Store.Get(ctx, key)
}

func (s *faultyStore) Put(ctx context.Context, key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.Put(ctx, key, value)
}

func (s *faultyStore) Delete(ctx context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	return s.Store.Delete(ctx, key)
}

var errDiskFull = apperrors.Wrap(apperrors.CodeStorageWrite, "put blob", fmt.Errorf("disk full"))
