package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const idWidth = 10

var now = time.Now

// NewRunning builds a running workout. Inputs are not validated here.
func NewRunning(coords Coords, distance, duration, cadence float64) Workout {
	w := newWorkout(Running, coords, distance, duration)
	w.Running = &RunningMetrics{
		Cadence: cadence,
		Pace:    Metric(Running, distance, duration),
	}
	return w
}

// NewCycling builds a cycling workout. Inputs are not validated here.
func NewCycling(coords Coords, distance, duration, elevationGain float64) Workout {
	w := newWorkout(Cycling, coords, distance, duration)
	w.Cycling = &CyclingMetrics{
		ElevationGain: elevationGain,
		Speed:         Metric(Cycling, distance, duration),
	}
	return w
}

// Metric computes pace (min/km) for running and speed (km per minute of
// duration) for cycling.
func Metric(t Type, distance, duration float64) float64 {
	switch t {
	case Running:
		return duration / distance
	case Cycling:
		return distance / duration
	}
	return 0
}

// Describe formats "<Type> on <Month> <day>" from the creation time.
func Describe(t Type, at time.Time) string {
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s %d", name, at.Month(), at.Day())
}

// NewID keeps the last ten digits of the Unix millisecond timestamp, so two
// workouts created in the same millisecond share an id.
func NewID(at time.Time) string {
	ms := strconv.FormatInt(at.UnixMilli(), 10)
	if len(ms) > idWidth {
		ms = ms[len(ms)-idWidth:]
	}
	return ms
}

func newWorkout(t Type, coords Coords, distance, duration float64) Workout {
	at := now()
	return Workout{
		ID:          NewID(at),
		Date:        at,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		Type:        t,
		Description: Describe(t, at),
	}
}

// FormatNumber prints v with as many digits as it needs, switching to
// exponent form below 1e-6 and from 1e21 up, as browsers do.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) && !math.IsInf(v, 0) {
		out := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(out, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed1 prints v with one decimal.
func FormatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
