// Package mapview wraps the map widget the workout log is drawn on.
package mapview

import (
	"errors"
	"time"

	"github.com/nazir19980501/mapty/internal/workout"
)

const DefaultZoom = 13

var ErrNotInitialized = errors.New("map not initialized")

type ViewOptions struct {
	Animate     bool          `json:"animate"`
	PanDuration time.Duration `json:"-"`
}

type Popup struct {
	Content      string `json:"content"`
	ClassName    string `json:"class_name"`
	MaxWidth     int    `json:"max_width"`
	MinWidth     int    `json:"min_width"`
	AutoClose    bool   `json:"auto_close"`
	CloseOnClick bool   `json:"close_on_click"`
}

// Widget is what the adapter needs from the map implementation.
type Widget interface {
	SetView(center workout.Coords, zoom int, opts ViewOptions)
	OnClick(handler func(workout.Coords))
	AddMarker(at workout.Coords, popup Popup)
}

// InputClearer empties the form's raw inputs after a marker is placed.
type InputClearer interface {
	ClearInputs()
}

type Adapter struct {
	widget Widget
	inputs InputClearer
	ready  bool
	zoom   int
}

func NewAdapter(widget Widget, inputs InputClearer) *Adapter {
	return &Adapter{widget: widget, inputs: inputs, zoom: DefaultZoom}
}

func (a *Adapter) Initialize(center workout.Coords, zoom int) {
	a.zoom = zoom
	a.widget.SetView(center, zoom, ViewOptions{})
	a.ready = true
}

func (a *Adapter) Ready() bool { return a.ready }

// OnClick forwards every map click to handler, once per click.
func (a *Adapter) OnClick(handler func(workout.Coords)) error {
	if !a.ready {
		return ErrNotInitialized
	}
	a.widget.OnClick(handler)
	return nil
}

func (a *Adapter) RenderMarker(w workout.Workout) error {
	if !a.ready {
		return ErrNotInitialized
	}
	a.widget.AddMarker(w.Coords, Popup{
		Content:      Emoji(w.Type) + " " + w.Description,
		ClassName:    string(w.Type) + "-popup",
		MaxWidth:     250,
		MinWidth:     100,
		AutoClose:    false,
		CloseOnClick: false,
	})
	if a.inputs != nil {
		a.inputs.ClearInputs()
	}
	return nil
}

// PanTo recenters on coords with a one second animated pan.
func (a *Adapter) PanTo(coords workout.Coords) error {
	if !a.ready {
		return ErrNotInitialized
	}
	a.widget.SetView(coords, a.zoom, ViewOptions{Animate: true, PanDuration: time.Second})
	return nil
}

// Emoji is the marker and list icon for a workout type.
func Emoji(t workout.Type) string {
	if t == workout.Running {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}
