package views

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/hildon-home/internal/domain/background"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

type testPicker struct {
	items    []Item
	selected []bool
}

func (p *testPicker) Append(item Item) {
	p.items = append(p.items, item)
	p.selected = append(p.selected, item.Selected)
}

func (p *testPicker) Len() int { return len(p.items) }

func (p *testPicker) Selected(pos int) bool { return p.selected[pos] }

func (p *testPicker) selectOnly(views ...int) {
	for i := range p.selected {
		p.selected[i] = false
	}
	for _, v := range views {
		p.selected[v-1] = true
	}
}

func (p *testPicker) selectedViews() []int {
	var out []int
	for i, on := range p.selected {
		if on {
			out = append(out, i+1)
		}
	}
	return out
}

type env struct {
	dir          string
	config       *store.MemoryStore
	currentTheme string
	defaultTheme string
	metrics      *monitoring.Metrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{
		dir:          dir,
		config:       store.NewMemoryStore(),
		currentTheme: filepath.Join(dir, "etc", "theme_bg.desktop"),
		defaultTheme: filepath.Join(dir, "usr", "theme_bg.desktop"),
		metrics:      monitoring.NewMetrics(),
	}
}

func (e *env) image(t *testing.T, name string, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 250, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 250; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func (e *env) descriptor(t *testing.T, path string, entries map[int]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := "[Desktop Entry]\n"
	for view, img := range entries {
		content += fmt.Sprintf("X-File%d=%s\n", view, img)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (e *env) service() *Service {
	return NewService(ServiceConfig{
		Store:        e.config,
		CurrentTheme: e.currentTheme,
		DefaultTheme: e.defaultTheme,
		Metrics:      e.metrics,
	})
}

func (e *env) open(t *testing.T) (*Session, *testPicker) {
	t.Helper()
	p := &testPicker{}
	s, err := e.service().Open(context.Background(), p)
	require.NoError(t, err)
	return s, p
}

func TestInitialSelectionMatchesStoredSet(t *testing.T) {
	for _, stored := range [][]int{{1}, {2, 3}, {4, 1}, {1, 2, 3, 4}, {3, 3}} {
		t.Run(fmt.Sprint(stored), func(t *testing.T) {
			e := newEnv(t)
			require.NoError(t, e.config.SetIntList(context.Background(), paths.ActiveViewsKey, stored))

			s, p := e.open(t)

			want := map[int]bool{}
			for _, v := range stored {
				want[v] = true
			}
			for pos := 0; pos < p.Len(); pos++ {
				assert.Equal(t, want[pos+1], p.Selected(pos), "view %d", pos+1)
			}
			assert.False(t, s.Repaired())
		})
	}
}

func TestOutOfRangeEntriesAreSkipped(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.config.SetIntList(context.Background(), paths.ActiveViewsKey, []int{0, 2, 9, -1}))

	s, p := e.open(t)

	assert.Equal(t, []int{2}, p.selectedViews())
	assert.Equal(t, []int{2}, s.Active())
	assert.False(t, s.Repaired())
}

func TestRepairFallsBackToFirstViewWithoutWriting(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*store.MemoryStore)
	}{
		{name: "absent", setup: func(*store.MemoryStore) {}},
		{name: "empty", setup: func(m *store.MemoryStore) { m.SetRaw(paths.ActiveViewsKey, []int{}) }},
		{name: "all out of range", setup: func(m *store.MemoryStore) { m.SetRaw(paths.ActiveViewsKey, []int{0, 5, 42}) }},
		{name: "unreadable", setup: func(m *store.MemoryStore) { m.FailRead(paths.ActiveViewsKey, errors.New("bus error")) }},
		{name: "malformed", setup: func(m *store.MemoryStore) { m.SetRaw(paths.ActiveViewsKey, "1,2") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			tt.setup(e.config)

			s, p := e.open(t)

			assert.Equal(t, []int{1}, p.selectedViews())
			assert.True(t, s.Repaired())
			assert.NotEmpty(t, s.Diagnostics())
			assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Repairs))

			require.NoError(t, s.Discard())
			assert.Zero(t, e.config.Writes())
		})
	}
}

func TestPopulateOrderAndThumbnails(t *testing.T) {
	e := newEnv(t)

	_, p := e.open(t)

	require.Equal(t, paths.MaxViews, p.Len())
	for pos, item := range p.items {
		assert.Equal(t, pos+1, item.View)
		assert.Equal(t, background.SourcePlaceholder, item.Source)
		assert.Equal(t, image.Rect(0, 0, 125, 75), item.Thumbnail.Bounds())
	}
}

func TestOverrideThumbnailIgnoresThemes(t *testing.T) {
	e := newEnv(t)
	override := e.image(t, "mine.png", color.NRGBA{R: 255, A: 255})
	themed := e.image(t, "themed.png", color.NRGBA{B: 255, A: 255})
	e.descriptor(t, e.currentTheme, map[int]string{1: themed, 2: themed})
	require.NoError(t, e.config.SetString(context.Background(), paths.BackgroundKey(2), override))

	_, p := e.open(t)

	assert.Equal(t, background.SourceOverride, p.items[1].Source)
	assert.Equal(t, override, p.items[1].Path)
	assert.Equal(t, background.SourceCurrentTheme, p.items[0].Source)
}

func TestCommitRoundTrip(t *testing.T) {
	for _, selection := range [][]int{{1}, {2, 4}, {1, 2, 3, 4}, {3}} {
		t.Run(fmt.Sprint(selection), func(t *testing.T) {
			e := newEnv(t)

			s, p := e.open(t)
			p.selectOnly(selection...)
			written, err := s.Commit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, selection, written)
			assert.Equal(t, StateCommitted, s.State())

			stored, err := e.config.GetIntList(context.Background(), paths.ActiveViewsKey)
			require.NoError(t, err)
			assert.Equal(t, selection, stored)

			next, p2 := e.open(t)
			assert.Equal(t, selection, p2.selectedViews())
			assert.Equal(t, selection, next.Active())
		})
	}
}

func TestCommitIsSingleWrite(t *testing.T) {
	e := newEnv(t)
	s, p := e.open(t)
	p.selectOnly(1, 3)

	_, err := s.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, e.config.Writes())
	assert.Equal(t, 2.0, testutil.ToFloat64(e.metrics.ActiveViews))
}

func TestCancelLeavesStoredSetUnchanged(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.config.SetIntList(context.Background(), paths.ActiveViewsKey, []int{2, 3}))
	writes := e.config.Writes()

	s, p := e.open(t)
	p.selectOnly(1, 4)
	_, err := s.Finish(context.Background(), OutcomeDismissed)
	require.NoError(t, err)

	assert.Equal(t, StateDiscarded, s.State())
	assert.Equal(t, writes, e.config.Writes())
	stored, err := e.config.GetIntList(context.Background(), paths.ActiveViewsKey)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, stored)
}

func TestCommitWriteFailureIsReported(t *testing.T) {
	e := newEnv(t)
	s, p := e.open(t)
	p.selectOnly(2)
	readOnly := errors.New("read-only configuration")
	e.config.FailWrites(readOnly)

	written, err := s.Commit(context.Background())

	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, readOnly)
	assert.Equal(t, []int{2}, written)
	assert.Equal(t, StateCommitted, s.State())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.CommitErrors))
}

func TestInvalidTransitions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	fresh := e.service().NewSession(&testPicker{})
	_, err := fresh.Commit(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	s, _ := e.open(t)
	assert.ErrorIs(t, s.Initialize(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, s.Populate(ctx), ErrInvalidTransition)

	_, err = s.Commit(ctx)
	require.NoError(t, err)
	writes := e.config.Writes()

	_, err = s.Commit(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.Discard(), ErrInvalidTransition)
	assert.Equal(t, writes, e.config.Writes())

	discarded, _ := e.open(t)
	require.NoError(t, discarded.Discard())
	_, err = discarded.Finish(ctx, OutcomeConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.service().NewSession(&testPicker{}).Finish(ctx, Outcome(7))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInitializeThenPopulate(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.config.SetIntList(context.Background(), paths.ActiveViewsKey, []int{3}))
	p := &testPicker{}
	s := e.service().NewSession(p)

	require.NoError(t, s.Initialize(context.Background()))
	assert.Equal(t, []int{3}, s.Active())
	assert.Zero(t, p.Len())

	require.NoError(t, s.Populate(context.Background()))
	assert.Equal(t, []int{3}, p.selectedViews())
}

func TestEmptyCommitIsWritten(t *testing.T) {
	e := newEnv(t)
	s, p := e.open(t)
	p.selectOnly()

	written, err := s.Commit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, written)

	next, p2 := e.open(t)
	assert.True(t, next.Repaired())
	assert.Equal(t, []int{1}, p2.selectedViews())
}

func TestSessionIDsAreUnique(t *testing.T) {
	svc := newEnv(t).service()
	assert.NotEqual(t, svc.NewSession(&testPicker{}).ID(), svc.NewSession(&testPicker{}).ID())
}

func TestScenarioThemedViews(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b1 := e.image(t, "default/b1.png", color.NRGBA{R: 10, A: 255})
	b2 := e.image(t, "cur/b2.png", color.NRGBA{G: 200, A: 255})
	b3 := e.image(t, "default/b3.png", color.NRGBA{B: 30, A: 255})
	b4 := e.image(t, "default/b4.png", color.NRGBA{R: 40, G: 40, A: 255})
	e.descriptor(t, e.currentTheme, map[int]string{2: b2})
	e.descriptor(t, e.defaultTheme, map[int]string{1: b1, 3: b3, 4: b4})
	require.NoError(t, e.config.SetIntList(ctx, paths.ActiveViewsKey, []int{2, 3}))

	s, p := e.open(t)

	assert.Equal(t, background.SourceDefaultTheme, p.items[0].Source)
	assert.Equal(t, background.SourceCurrentTheme, p.items[1].Source)
	assert.Equal(t, background.SourceDefaultTheme, p.items[2].Source)
	assert.Equal(t, background.SourceDefaultTheme, p.items[3].Source)
	assert.Equal(t, []string{b1, b2, b3, b4}, []string{p.items[0].Path, p.items[1].Path, p.items[2].Path, p.items[3].Path})
	assert.Equal(t, []int{2, 3}, p.selectedViews())

	p.selectOnly(1, 4)
	_, err := s.Finish(ctx, OutcomeConfirmed)
	require.NoError(t, err)

	stored, err := e.config.GetIntList(ctx, paths.ActiveViewsKey)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, stored)
}

func TestScenarioMalformedActiveSet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.config.SetRaw(paths.ActiveViewsKey, map[string]int{"view": 2})

	s, p := e.open(t)
	assert.Equal(t, []int{1}, p.selectedViews())

	_, err := s.Finish(ctx, OutcomeConfirmed)
	require.NoError(t, err)

	stored, err := e.config.GetIntList(ctx, paths.ActiveViewsKey)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stored)
}

func TestFileBackedRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "views.toml"))
	require.NoError(t, err)
	svc := NewService(ServiceConfig{
		Store:        fs,
		CurrentTheme: filepath.Join(t.TempDir(), "none.desktop"),
		DefaultTheme: filepath.Join(t.TempDir(), "none.desktop"),
	})

	p := &testPicker{}
	s, err := svc.Open(ctx, p)
	require.NoError(t, err)
	p.selectOnly(4, 2)
	_, err = s.Commit(ctx)
	require.NoError(t, err)

	p2 := &testPicker{}
	_, err = svc.Open(ctx, p2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, p2.selectedViews())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "populated", StatePopulated.String())
	assert.Equal(t, "committed", StateCommitted.String())
	assert.Equal(t, "discarded", StateDiscarded.String())
	assert.Equal(t, "unknown", State(99).String())
}
