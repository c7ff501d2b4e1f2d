package browser

import (
	"errors"
	"html/template"

	"github.com/nazir19980501/mapty/internal/mapview"
	"github.com/nazir19980501/mapty/internal/workout"
)

// Map is a mapview.Widget drawn by the page's Leaflet map.
type Map struct {
	ch      Channel
	handler func(workout.Coords)
}

func NewMap(ch Channel) *Map { return &Map{ch: ch} }

func (m *Map) SetView(center workout.Coords, zoom int, opts mapview.ViewOptions) {
	m.ch.Send(Command{
		Op:       OpMapView,
		Center:   &center,
		Zoom:     zoom,
		Animate:  opts.Animate,
		Duration: opts.PanDuration.Seconds(),
	})
}

// OnClick keeps handler for Click and asks the page to start reporting clicks.
func (m *Map) OnClick(handler func(workout.Coords)) {
	m.handler = handler
	m.ch.Send(Command{Op: OpMapListen})
}

func (m *Map) AddMarker(at workout.Coords, popup mapview.Popup) {
	m.ch.Send(Command{Op: OpMapMarker, Center: &at, Popup: &popup})
}

// Click delivers a click reported by the page. It reports false when no
// handler is registered yet.
func (m *Map) Click(at workout.Coords) bool {
	if m.handler == nil {
		return false
	}
	m.handler(at)
	return true
}

type Form struct{ ch Channel }

func NewForm(ch Channel) *Form { return &Form{ch: ch} }

func (f *Form) Show(kind workout.Type) { f.ch.Send(Command{Op: OpFormShow, Type: kind}) }

func (f *Form) Hide() { f.ch.Send(Command{Op: OpFormHide}) }

func (f *Form) ShowSecondary(kind workout.Type) {
	f.ch.Send(Command{Op: OpFormSecondary, Type: kind})
}

func (f *Form) ClearInputs() { f.ch.Send(Command{Op: OpFormClear}) }

type List struct{ ch Channel }

func NewList(ch Channel) *List { return &List{ch: ch} }

func (l *List) InsertAfterForm(fragment template.HTML) {
	l.ch.Send(Command{Op: OpListInsert, HTML: string(fragment)})
}

type Notifier struct{ ch Channel }

func NewNotifier(ch Channel) *Notifier { return &Notifier{ch: ch} }

func (n *Notifier) Alert(message string) { n.ch.Send(Command{Op: OpAlert, Message: message}) }

var ErrLocationDenied = errors.New("location denied")

// Geolocation asks the page for the device position. Of the two callbacks
// handed to Request exactly one fires, the first time the page answers.
type Geolocation struct {
	ch        Channel
	onSuccess func(workout.Coords)
	onFailure func(error)
}

func NewGeolocation(ch Channel) *Geolocation { return &Geolocation{ch: ch} }

func (g *Geolocation) Request(onSuccess func(workout.Coords), onFailure func(error)) {
	g.onSuccess, g.onFailure = onSuccess, onFailure
	g.ch.Send(Command{Op: OpGeoLocate})
}

func (g *Geolocation) Pending() bool { return g.onSuccess != nil || g.onFailure != nil }

func (g *Geolocation) Resolve(at workout.Coords) bool {
	fn := g.onSuccess
	g.onSuccess, g.onFailure = nil, nil
	if fn == nil {
		return false
	}
	fn(at)
	return true
}

func (g *Geolocation) Fail(err error) bool {
	fn := g.onFailure
	g.onSuccess, g.onFailure = nil, nil
	if fn == nil {
		return false
	}
	if err == nil {
		err = ErrLocationDenied
	}
	fn(err)
	return true
}
