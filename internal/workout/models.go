package workout

import (
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	Running Type = "running"
	Cycling Type = "cycling"
)

// ParseType accepts the two workout kinds the form offers.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case Running, Cycling:
		return Type(s), true
	}
	return "", false
}

// Coords is a latitude/longitude pair, encoded as [lat, lng].
type Coords struct {
	Lat float64
	Lng float64
}

func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coords) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("coords: %w", err)
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

type RunningMetrics struct {
	Cadence float64
	Pace    float64
}

type CyclingMetrics struct {
	ElevationGain float64
	Speed         float64
}

// Workout is one logged session. Exactly one of Running and Cycling is set,
// matching Type.
type Workout struct {
	ID          string
	Date        time.Time
	Coords      Coords
	Distance    float64
	Duration    float64
	Type        Type
	Description string

	Running *RunningMetrics
	Cycling *CyclingMetrics
}

// record is the flat persisted form of a Workout.
type record struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Coords        Coords    `json:"coords"`
	Distance      float64   `json:"distance"`
	Duration      float64   `json:"duration"`
	Type          Type      `json:"type"`
	Description   string    `json:"description"`
	Cadence       *float64  `json:"cadence,omitempty"`
	Pace          *float64  `json:"pace,omitempty"`
	ElevationGain *float64  `json:"elevationGain,omitempty"`
	Speed         *float64  `json:"speed,omitempty"`

	// written by older clients
	LegacyDescription string `json:"discription,omitempty"`
}

func (w Workout) MarshalJSON() ([]byte, error) {
	rec := record{
		ID:          w.ID,
		Date:        w.Date,
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Type:        w.Type,
		Description: w.Description,
	}
	if w.Running != nil {
		rec.Cadence = &w.Running.Cadence
		rec.Pace = &w.Running.Pace
	}
	if w.Cycling != nil {
		rec.ElevationGain = &w.Cycling.ElevationGain
		rec.Speed = &w.Cycling.Speed
	}
	return json.Marshal(rec)
}

func (w *Workout) UnmarshalJSON(b []byte) error {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	if _, ok := ParseType(string(rec.Type)); !ok {
		return fmt.Errorf("workout %s: unknown type %q", rec.ID, rec.Type)
	}
	*w = Workout{
		ID:          rec.ID,
		Date:        rec.Date,
		Coords:      rec.Coords,
		Distance:    rec.Distance,
		Duration:    rec.Duration,
		Type:        rec.Type,
		Description: rec.Description,
	}
	if w.Description == "" {
		w.Description = rec.LegacyDescription
	}
	switch rec.Type {
	case Running:
		w.Running = &RunningMetrics{Cadence: deref(rec.Cadence), Pace: deref(rec.Pace)}
	case Cycling:
		w.Cycling = &CyclingMetrics{ElevationGain: deref(rec.ElevationGain), Speed: deref(rec.Speed)}
	}
	return nil
}

// Metric returns the stored derived metric: pace for running, speed for cycling.
func (w Workout) Metric() float64 {
	switch {
	case w.Running != nil:
		return w.Running.Pace
	case w.Cycling != nil:
		return w.Cycling.Speed
	}
	return 0
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
