// Package app wires the workout form, map and list together for one user
// session.
package app

import (
	"context"
	"errors"

	"github.com/nazir19980501/mapty/internal/form"
	"github.com/nazir19980501/mapty/internal/listview"
	"github.com/nazir19980501/mapty/internal/mapview"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/rs/zerolog/log"
)

const LocationUnavailableMessage = "could not get your location"

// Locator asks for the device position once. Exactly one of the callbacks
// fires, possibly much later.
type Locator interface {
	Request(onSuccess func(workout.Coords), onFailure func(error))
}

type Notifier interface {
	Alert(message string)
}

// Deps are the collaborators a Controller is built from.
type Deps struct {
	Locator     Locator
	Notifier    Notifier
	Store       *workout.Store
	Widget      mapview.Widget
	FormSurface form.Surface
	ListSurface listview.Surface
}

// State is everything a session mutates.
type State struct {
	Map      *mapview.Adapter
	Form     *form.Controller
	List     *listview.Renderer
	Workouts *workout.Store

	Started     bool
	Located     bool
	LocationErr error
}

type Controller struct {
	state    State
	locator  Locator
	notifier Notifier
}

func New(d Deps) *Controller {
	c := &Controller{locator: d.Locator, notifier: d.Notifier}
	c.state.Workouts = d.Store
	c.state.Map = mapview.NewAdapter(d.Widget, d.FormSurface)
	c.state.List = listview.NewRenderer(d.ListSurface, d.Store, c.state.Map)
	c.state.Form = form.NewController(d.FormSurface, d.Store, c.render)
	return c
}

func (c *Controller) State() State { return c.state }

// Start requests the location. Map setup and replay wait for the answer.
func (c *Controller) Start() {
	if c.state.Started {
		return
	}
	c.state.Started = true
	c.locator.Request(c.located, c.locationFailed)
}

func (c *Controller) located(at workout.Coords) {
	if c.state.Located {
		return
	}
	c.state.Located = true
	c.state.Map.Initialize(at, mapview.DefaultZoom)
	if err := c.state.Map.OnClick(c.state.Form.Open); err != nil {
		log.Error().Err(err).Msg("map click handler not registered")
	}

	restored := c.state.Workouts.All()
	for _, w := range restored {
		c.render(w)
	}
	log.Debug().Float64("lat", at.Lat).Float64("lng", at.Lng).Int("replayed", len(restored)).Msg("map ready")
}

func (c *Controller) locationFailed(err error) {
	c.state.LocationErr = err
	log.Warn().Err(err).Msg("location unavailable, map disabled")
	c.notifier.Alert(LocationUnavailableMessage)
}

func (c *Controller) render(w workout.Workout) {
	if err := c.state.Map.RenderMarker(w); err != nil {
		log.Error().Err(err).Str("id", w.ID).Msg("marker not rendered")
	}
	if err := c.state.List.Append(w); err != nil {
		log.Error().Err(err).Str("id", w.ID).Msg("list entry not rendered")
	}
}

func (c *Controller) ChangeType(kind workout.Type) {
	c.state.Form.ChangeType(kind)
}

// Submit hands the form values to the form controller and alerts the user
// when they do not validate.
func (c *Controller) Submit(ctx context.Context, in form.Input) (workout.Workout, error) {
	w, err := c.state.Form.Submit(ctx, in)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		c.notifier.Alert(form.InvalidInputMessage)
	}
	return w, err
}

// EntryClicked pans to the workout behind a list entry, if the map is up and
// the id is known.
func (c *Controller) EntryClicked(id string) bool {
	if !c.state.Map.Ready() {
		return false
	}
	return c.state.List.Click(id)
}
