package workout

import (
	"bytes"
	"math"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
	"github.com/tkrajina/gpxgo/gpx"
)

const (
	gpxCreator = "mapty"

	// FIT positions are semicircles: 2^31 per 180 degrees.
	degreesToSemicircles = 2147483648.0 / 180.0
)

// GPX renders the log as GPX 1.1 waypoints, one per workout.
func GPX(workouts []Workout) ([]byte, error) {
	doc := gpx.GPX{Creator: gpxCreator}
	for _, w := range workouts {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  w.Coords.Lat,
				Longitude: w.Coords.Lng,
			},
			Timestamp:   w.Date.UTC(),
			Name:        w.Description,
			Description: Summary(w),
			Type:        string(w.Type),
			Source:      w.ID,
		})
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

// FIT encodes w as a single-session FIT activity file. The workout has no
// track, so the file carries one record at the logged position.
func FIT(w Workout) ([]byte, error) {
	start := w.Date.UTC()
	lat := semicircles(w.Coords.Lat)
	lng := semicircles(w.Coords.Lng)
	distance := fitUint32(w.Distance * 1000 * 100) // cm
	elapsed := fitUint32(w.Duration * 60 * 1000)   // ms
	end := start.Add(time.Duration(elapsed) * time.Millisecond)

	var avgSpeed uint32 // mm/s
	if w.Duration > 0 {
		avgSpeed = fitUint32(w.Distance * 1000 / (w.Duration * 60) * 1000)
	}

	sport := typedef.SportRunning
	var cadence uint8
	var ascent uint16
	switch {
	case w.Running != nil:
		cadence = uint8(math.Min(w.Running.Cadence, 254))
	case w.Cycling != nil:
		sport = typedef.SportCycling
		if w.Cycling.ElevationGain > 0 {
			ascent = uint16(math.Min(w.Cycling.ElevationGain, 65534))
		}
	}

	fileID := mesgdef.FileId{
		Type:         typedef.FileActivity,
		Manufacturer: typedef.ManufacturerDevelopment,
		TimeCreated:  start,
	}
	record := mesgdef.Record{
		Timestamp:     start,
		PositionLat:   lat,
		PositionLong:  lng,
		EnhancedSpeed: avgSpeed,
		Cadence:       cadence,
	}
	stop := mesgdef.Event{
		Timestamp: end,
		Event:     typedef.EventTimer,
		EventType: typedef.EventTypeStopAll,
	}
	lap := mesgdef.Lap{
		Timestamp:         end,
		StartTime:         start,
		StartPositionLat:  lat,
		StartPositionLong: lng,
		TotalElapsedTime:  elapsed,
		TotalTimerTime:    elapsed,
		TotalDistance:     distance,
		Event:             typedef.EventLap,
		EventType:         typedef.EventTypeStop,
	}
	session := mesgdef.Session{
		Timestamp:         end,
		StartTime:         start,
		StartPositionLat:  lat,
		StartPositionLong: lng,
		TotalElapsedTime:  elapsed,
		TotalTimerTime:    elapsed,
		TotalDistance:     distance,
		EnhancedAvgSpeed:  avgSpeed,
		AvgCadence:        cadence,
		TotalAscent:       ascent,
		Sport:             sport,
		Event:             typedef.EventSession,
		EventType:         typedef.EventTypeStop,
		Trigger:           typedef.SessionTriggerActivityEnd,
	}

	file := proto.FIT{Messages: []proto.Message{
		fileID.ToMesg(nil),
		record.ToMesg(nil),
		stop.ToMesg(nil),
		lap.ToMesg(nil),
		session.ToMesg(nil),
	}}

	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(&file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary is the one line description of a workout's numbers used in
// exports.
func Summary(w Workout) string {
	s := FormatNumber(w.Distance) + " km in " + FormatNumber(w.Duration) + " min"
	switch {
	case w.Running != nil:
		s += ", " + FormatFixed1(w.Running.Pace) + " min/km, " + FormatNumber(w.Running.Cadence) + " spm"
	case w.Cycling != nil:
		s += ", " + FormatFixed1(w.Cycling.Speed) + " km/h, " + FormatNumber(w.Cycling.ElevationGain) + " m"
	}
	return s
}

// fitUint32 clamps v into the valid uint32 range; MaxUint32 itself marks an
// invalid field in FIT.
func fitUint32(v float64) uint32 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint32-1:
		return math.MaxUint32 - 1
	}
	return uint32(v)
}

func semicircles(deg float64) int32 {
	v := deg * degreesToSemicircles
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= -math.MaxInt32:
		return -math.MaxInt32
	}
	return int32(v)
}
