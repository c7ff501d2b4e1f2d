package mapview

import (
	"errors"
	"testing"
	"time"

	"github.com/nazir19980501/mapty/internal/workout"
)

type view struct {
	center workout.Coords
	zoom   int
	opts   ViewOptions
}

type marker struct {
	at    workout.Coords
	popup Popup
}

type fakeWidget struct {
	views   []view
	markers []marker
	handler func(workout.Coords)
}

func (f *fakeWidget) SetView(center workout.Coords, zoom int, opts ViewOptions) {
	f.views = append(f.views, view{center, zoom, opts})
}

func (f *fakeWidget) OnClick(handler func(workout.Coords)) { f.handler = handler }

func (f *fakeWidget) AddMarker(at workout.Coords, popup Popup) {
	f.markers = append(f.markers, marker{at, popup})
}

type fakeInputs struct{ cleared int }

func (f *fakeInputs) ClearInputs() { f.cleared++ }

func TestAdapterRequiresInitialize(t *testing.T) {
	widget := &fakeWidget{}
	a := NewAdapter(widget, nil)

	if err := a.OnClick(func(workout.Coords) {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := a.RenderMarker(workout.Workout{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := a.PanTo(workout.Coords{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if len(widget.views) != 0 || widget.handler != nil {
		t.Fatalf("widget must stay untouched before initialize")
	}
}

func TestAdapterInitializeAndClick(t *testing.T) {
	widget := &fakeWidget{}
	a := NewAdapter(widget, nil)
	a.Initialize(workout.Coords{Lat: 51.5, Lng: -0.09}, DefaultZoom)

	if !a.Ready() {
		t.Fatalf("expected ready adapter")
	}
	if len(widget.views) != 1 || widget.views[0].zoom != 13 || widget.views[0].opts.Animate {
		t.Fatalf("unexpected initial view: %+v", widget.views)
	}

	var clicks []workout.Coords
	if err := a.OnClick(func(c workout.Coords) { clicks = append(clicks, c) }); err != nil {
		t.Fatalf("on click: %v", err)
	}
	widget.handler(workout.Coords{Lat: 1, Lng: 2})
	widget.handler(workout.Coords{Lat: 1, Lng: 2})
	if len(clicks) != 2 {
		t.Fatalf("expected one call per click, got %d", len(clicks))
	}
}

func TestAdapterRenderMarker(t *testing.T) {
	widget := &fakeWidget{}
	inputs := &fakeInputs{}
	a := NewAdapter(widget, inputs)
	a.Initialize(workout.Coords{}, DefaultZoom)

	w := workout.Workout{Type: workout.Cycling, Coords: workout.Coords{Lat: 3, Lng: 4}, Description: "Cycling on March 3"}
	if err := a.RenderMarker(w); err != nil {
		t.Fatalf("render marker: %v", err)
	}
	if len(widget.markers) != 1 {
		t.Fatalf("expected one marker")
	}
	m := widget.markers[0]
	if m.at != w.Coords {
		t.Fatalf("marker at wrong coords")
	}
	want := Popup{Content: "🚴‍♀️ Cycling on March 3", ClassName: "cycling-popup", MaxWidth: 250, MinWidth: 100}
	if m.popup != want {
		t.Fatalf("unexpected popup %+v", m.popup)
	}
	if inputs.cleared != 1 {
		t.Fatalf("expected inputs cleared after marker")
	}
}

func TestAdapterPanTo(t *testing.T) {
	widget := &fakeWidget{}
	a := NewAdapter(widget, nil)
	a.Initialize(workout.Coords{}, DefaultZoom)

	target := workout.Coords{Lat: 10, Lng: 20}
	if err := a.PanTo(target); err != nil {
		t.Fatalf("pan: %v", err)
	}
	last := widget.views[len(widget.views)-1]
	if last.center != target || last.zoom != DefaultZoom || !last.opts.Animate || last.opts.PanDuration != time.Second {
		t.Fatalf("unexpected pan view %+v", last)
	}
}

func TestEmoji(t *testing.T) {
	if Emoji(workout.Running) != "🏃‍♂️" || Emoji(workout.Cycling) != "🚴‍♀️" {
		t.Fatalf("unexpected emoji")
	}
}
