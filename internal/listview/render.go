// Package listview turns workouts into entries of the sidebar log.
package listview

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/nazir19980501/mapty/internal/mapview"
	"github.com/nazir19980501/mapty/internal/workout"
)

//go:embed entry.html
var entrySource string

var entryTemplate = template.Must(template.New("entry").Parse(entrySource))

type Row struct {
	Icon  string
	Value string
	Unit  string
}

type Entry struct {
	ID    string
	Type  workout.Type
	Title string
	Rows  []Row
}

// Surface is the list container; fragments go right after the form so the
// newest entry is on top.
type Surface interface {
	InsertAfterForm(fragment template.HTML)
}

type Finder interface {
	FindByID(id string) (workout.Workout, bool)
}

type Panner interface {
	PanTo(coords workout.Coords) error
}

// NewEntry lays out the rows shown for w.
func NewEntry(w workout.Workout) Entry {
	e := Entry{
		ID:    w.ID,
		Type:  w.Type,
		Title: w.Description,
		Rows: []Row{
			{Icon: mapview.Emoji(w.Type), Value: workout.FormatNumber(w.Distance), Unit: "km"},
			{Icon: "⏱", Value: workout.FormatNumber(w.Duration), Unit: "min"},
		},
	}
	switch {
	case w.Running != nil:
		e.Rows = append(e.Rows,
			Row{Icon: "⚡️", Value: workout.FormatFixed1(w.Running.Pace), Unit: "min/km"},
			Row{Icon: "🦶🏼", Value: workout.FormatNumber(w.Running.Cadence), Unit: "spm"},
		)
	case w.Cycling != nil:
		e.Rows = append(e.Rows,
			Row{Icon: "⚡️", Value: workout.FormatFixed1(w.Cycling.Speed), Unit: "km/h"},
			Row{Icon: "⛰", Value: workout.FormatNumber(w.Cycling.ElevationGain), Unit: "m"},
		)
	}
	return e
}

// Render produces the list entry markup for w.
func Render(w workout.Workout) (template.HTML, error) {
	var buf bytes.Buffer
	if err := entryTemplate.Execute(&buf, NewEntry(w)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type Renderer struct {
	surface Surface
	store   Finder
	panner  Panner
}

func NewRenderer(surface Surface, store Finder, panner Panner) *Renderer {
	return &Renderer{surface: surface, store: store, panner: panner}
}

func (r *Renderer) Append(w workout.Workout) error {
	fragment, err := Render(w)
	if err != nil {
		return err
	}
	r.surface.InsertAfterForm(fragment)
	return nil
}

// Click pans to the workout behind an entry. Unknown ids do nothing.
func (r *Renderer) Click(id string) bool {
	w, ok := r.store.FindByID(id)
	if !ok {
		return false
	}
	return r.panner.PanTo(w.Coords) == nil
}
