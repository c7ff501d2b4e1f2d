// Package form drives the workout entry form: when it shows, which secondary
// field it offers, and how raw input becomes a workout.
package form

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/nazir19980501/mapty/internal/metrics"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/rs/zerolog/log"
)

const InvalidInputMessage = "inputs have to be positive numbers"

var ErrNotOpen = errors.New("form is not open")

type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Surface is the form as drawn for the user.
type Surface interface {
	Show(kind workout.Type)
	Hide()
	ShowSecondary(kind workout.Type)
	ClearInputs()
}

type Appender interface {
	Append(ctx context.Context, w workout.Workout) error
}

// Input holds the raw values of the form fields at submit time.
type Input struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

type ValidationError struct {
	Type  workout.Type
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return InvalidInputMessage
	}
	return fmt.Sprintf("%s: invalid %s", InvalidInputMessage, e.Field)
}

type Controller struct {
	surface Surface
	store   Appender
	render  func(workout.Workout)

	state   State
	kind    workout.Type
	pending workout.Coords
}

// NewController starts hidden. render is called with every accepted workout
// after it was stored.
func NewController(surface Surface, store Appender, render func(workout.Workout)) *Controller {
	return &Controller{surface: surface, store: store, render: render, state: Hidden, kind: workout.Running}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Kind() workout.Type { return c.kind }

// Pending is the map position the next workout will be logged at.
func (c *Controller) Pending() (workout.Coords, bool) {
	return c.pending, c.state == Visible
}

// Open shows the form for a click at coords. A click while already open only
// moves the pending position.
func (c *Controller) Open(coords workout.Coords) {
	c.pending = coords
	if c.state == Visible {
		return
	}
	c.state = Visible
	c.kind = workout.Running
	c.surface.Show(c.kind)
}

// ChangeType swaps the secondary field. Ignored while hidden.
func (c *Controller) ChangeType(kind workout.Type) {
	if c.state != Visible || kind == c.kind {
		return
	}
	c.kind = kind
	c.surface.ShowSecondary(kind)
}

// Submit validates in and, when valid, stores the workout, renders it and
// hides the form. On error nothing changes.
func (c *Controller) Submit(ctx context.Context, in Input) (workout.Workout, error) {
	if c.state != Visible {
		return workout.Workout{}, ErrNotOpen
	}

	kind := c.kind
	if in.Type != "" {
		parsed, ok := workout.ParseType(in.Type)
		if !ok {
			return workout.Workout{}, &ValidationError{Field: "type"}
		}
		kind = parsed
	}

	w, err := build(kind, c.pending, in)
	if err != nil {
		metrics.ValidationFailed(string(kind))
		return workout.Workout{}, err
	}

	if err := c.store.Append(ctx, w); err != nil {
		log.Error().Err(err).Str("id", w.ID).Msg("workout log not persisted")
	}
	metrics.WorkoutLogged(string(w.Type))
	if c.render != nil {
		c.render(w)
	}
	c.hide()
	return w, nil
}

func (c *Controller) hide() {
	c.surface.ClearInputs()
	c.surface.Hide()
	c.state = Hidden
}

func build(kind workout.Type, at workout.Coords, in Input) (workout.Workout, error) {
	distance := Number(in.Distance)
	duration := Number(in.Duration)

	switch kind {
	case workout.Running:
		cadence := Number(in.Cadence)
		if err := check(kind, distance, duration, cadence, true); err != nil {
			return workout.Workout{}, err
		}
		return workout.NewRunning(at, distance, duration, cadence), nil
	case workout.Cycling:
		elevation := Number(in.Elevation)
		// elevation may be negative
		if err := check(kind, distance, duration, elevation, false); err != nil {
			return workout.Workout{}, err
		}
		return workout.NewCycling(at, distance, duration, elevation), nil
	}
	return workout.Workout{}, &ValidationError{Field: "type"}
}

func check(kind workout.Type, distance, duration, secondary float64, secondaryPositive bool) error {
	secondaryField := "cadence"
	if kind == workout.Cycling {
		secondaryField = "elevation"
	}
	switch {
	case !finite(distance) || distance <= 0:
		return &ValidationError{Type: kind, Field: "distance"}
	case !finite(duration) || duration <= 0:
		return &ValidationError{Type: kind, Field: "duration"}
	case !finite(secondary) || (secondaryPositive && secondary <= 0):
		return &ValidationError{Type: kind, Field: secondaryField}
	case !finite(workout.Metric(kind, distance, duration)):
		return &ValidationError{Type: kind, Field: metricField(kind)}
	}
	return nil
}

func metricField(kind workout.Type) string {
	if kind == workout.Cycling {
		return "speed"
	}
	return "pace"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Number converts a field value the way a browser's unary plus does: blank
// is zero, 0x/0o/0b integers are read in their base, anything else that is
// not a decimal literal is NaN.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		if base := radix(s[1]); base != 0 {
			return integer(s[2:], base)
		}
	}
	if !decimal.MatchString(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func radix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func integer(digits string, base int) float64 {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || strings.ContainsAny(digits, "_+-") {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}
