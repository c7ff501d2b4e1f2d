package listview

import (
	"context"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nazir19980501/mapty/internal/kv"
	"github.com/nazir19980501/mapty/internal/workout"
)

type fakeSurface struct{ inserted []template.HTML }

func (f *fakeSurface) InsertAfterForm(fragment template.HTML) {
	f.inserted = append(f.inserted, fragment)
}

type fakePanner struct{ pans []workout.Coords }

func (f *fakePanner) PanTo(c workout.Coords) error {
	f.pans = append(f.pans, c)
	return nil
}

func running() workout.Workout {
	return workout.Workout{
		ID: "1709458200", Type: workout.Running, Description: "Running on March 3",
		Coords: workout.Coords{Lat: 1, Lng: 2}, Distance: 5, Duration: 25,
		Running: &workout.RunningMetrics{Cadence: 178, Pace: 5},
	}
}

func cycling() workout.Workout {
	return workout.Workout{
		ID: "1709458300", Type: workout.Cycling, Description: "Cycling on March 3",
		Coords: workout.Coords{Lat: 3, Lng: 4}, Distance: 20, Duration: 60,
		Cycling: &workout.CyclingMetrics{ElevationGain: 300, Speed: 20.0 / 60.0},
	}
}

func TestNewEntryRunning(t *testing.T) {
	e := NewEntry(running())
	require.Equal(t, "Running on March 3", e.Title)
	require.Equal(t, []Row{
		{Icon: "🏃‍♂️", Value: "5", Unit: "km"},
		{Icon: "⏱", Value: "25", Unit: "min"},
		{Icon: "⚡️", Value: "5.0", Unit: "min/km"},
		{Icon: "🦶🏼", Value: "178", Unit: "spm"},
	}, e.Rows)
}

func TestNewEntryCycling(t *testing.T) {
	e := NewEntry(cycling())
	require.Equal(t, []Row{
		{Icon: "🚴‍♀️", Value: "20", Unit: "km"},
		{Icon: "⏱", Value: "60", Unit: "min"},
		{Icon: "⚡️", Value: "0.3", Unit: "km/h"},
		{Icon: "⛰", Value: "300", Unit: "m"},
	}, e.Rows)
}

func TestRenderMarkup(t *testing.T) {
	html, err := Render(running())
	require.NoError(t, err)

	out := string(html)
	require.True(t, strings.HasPrefix(out, `<li class="workout workout--running" data-id="1709458200">`))
	require.Contains(t, out, `<h2 class="workout__title">Running on March 3</h2>`)
	require.Contains(t, out, `<span class="workout__value">5.0</span>`)
	require.Contains(t, out, `<span class="workout__unit">spm</span>`)
	require.Equal(t, 4, strings.Count(out, `class="workout__details"`))
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "</li>"))
}

func TestRenderEscapesDescription(t *testing.T) {
	w := running()
	w.Description = `<script>x</script>`
	html, err := Render(w)
	require.NoError(t, err)
	require.NotContains(t, string(html), "<script>")
}

func TestRenderSurvivesRestore(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	store := workout.NewStore(ctx, backend, "")
	require.NoError(t, store.Append(ctx, running()))
	require.NoError(t, store.Append(ctx, cycling()))

	restored := workout.NewStore(ctx, backend, "")
	before, after := store.All(), restored.All()
	require.Len(t, after, len(before))
	for i := range before {
		want, err := Render(before[i])
		require.NoError(t, err)
		got, err := Render(after[i])
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRendererAppendAndClick(t *testing.T) {
	ctx := context.Background()
	store := workout.NewStore(ctx, kv.NewMemory(), "")
	require.NoError(t, store.Append(ctx, cycling()))

	surface := &fakeSurface{}
	panner := &fakePanner{}
	r := NewRenderer(surface, store, panner)

	require.NoError(t, r.Append(cycling()))
	require.Len(t, surface.inserted, 1)

	require.True(t, r.Click("1709458300"))
	require.Equal(t, []workout.Coords{{Lat: 3, Lng: 4}}, panner.pans)

	require.False(t, r.Click("unknown"))
	require.Len(t, panner.pans, 1)
}
