package workout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

var march3 = time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)

func TestNewRunning(t *testing.T) {
	fixClock(t, march3)

	w := NewRunning(Coords{Lat: 51.5, Lng: -0.09}, 5, 25, 178)
	require.Equal(t, Running, w.Type)
	require.NotNil(t, w.Running)
	require.Nil(t, w.Cycling)
	require.Equal(t, 5.0, w.Running.Pace)
	require.Equal(t, 178.0, w.Running.Cadence)
	require.Equal(t, "Running on March 3", w.Description)
	require.Equal(t, march3, w.Date)
	require.Equal(t, Coords{Lat: 51.5, Lng: -0.09}, w.Coords)
}

func TestNewCycling(t *testing.T) {
	fixClock(t, march3)

	w := NewCycling(Coords{Lat: 1, Lng: 2}, 20, 60, 300)
	require.Equal(t, Cycling, w.Type)
	require.NotNil(t, w.Cycling)
	require.Nil(t, w.Running)
	require.Equal(t, 20.0/60.0, w.Cycling.Speed)
	require.Equal(t, 300.0, w.Cycling.ElevationGain)
	require.Equal(t, "Cycling on March 3", w.Description)
	require.Equal(t, w.Cycling.Speed, w.Metric())
}

func TestMetricIsExact(t *testing.T) {
	cases := []struct{ distance, duration float64 }{
		{3, 7}, {0.1, 0.3}, {42.195, 211.5}, {1e-3, 1e3},
	}
	for _, tc := range cases {
		require.Equal(t, tc.duration/tc.distance, Metric(Running, tc.distance, tc.duration))
		require.Equal(t, tc.distance/tc.duration, Metric(Cycling, tc.distance, tc.duration))
	}
	require.Zero(t, Metric(Type("swimming"), 1, 1))
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "Running on December 31", Describe(Running, time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)))
	require.Equal(t, "Cycling on January 1", Describe(Cycling, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewIDTruncates(t *testing.T) {
	at := time.UnixMilli(1709458200123)
	require.Equal(t, "9458200123", NewID(at))
	require.Len(t, NewID(time.Now()), idWidth)
}

func TestIDsCollideWithinMillisecond(t *testing.T) {
	fixClock(t, march3)

	a := NewRunning(Coords{}, 1, 1, 1)
	b := NewCycling(Coords{}, 1, 1, 1)
	require.Equal(t, a.ID, b.ID, "ids come from the creation millisecond and may repeat")
}

func TestParseType(t *testing.T) {
	kind, ok := ParseType("cycling")
	require.True(t, ok)
	require.Equal(t, Cycling, kind)

	_, ok = ParseType("Running")
	require.False(t, ok)
}

func TestJSONShape(t *testing.T) {
	fixClock(t, march3)

	b, err := json.Marshal(NewRunning(Coords{Lat: 10, Lng: 20}, 5, 25, 178))
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(b, &flat))
	require.Equal(t, []any{10.0, 20.0}, flat["coords"])
	require.Equal(t, "running", flat["type"])
	require.Equal(t, 5.0, flat["pace"])
	require.Equal(t, 178.0, flat["cadence"])
	require.Equal(t, "Running on March 3", flat["description"])
	require.NotContains(t, flat, "speed")
	require.NotContains(t, flat, "elevationGain")
}

func TestUnmarshalKeepsStoredMetrics(t *testing.T) {
	raw := `{"id":"0000000001","date":"2024-03-03T09:30:00Z","coords":[1,2],"distance":20,"duration":60,
		"type":"cycling","elevationGain":-12,"speed":9.99,"discription":"Cycling on March 3"}`

	var w Workout
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	require.Equal(t, 9.99, w.Cycling.Speed, "stored metric is not recomputed")
	require.Equal(t, -12.0, w.Cycling.ElevationGain)
	require.Equal(t, "Cycling on March 3", w.Description)
	require.Equal(t, Coords{Lat: 1, Lng: 2}, w.Coords)
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	var w Workout
	require.Error(t, json.Unmarshal([]byte(`{"id":"1","type":"swimming","coords":[0,0]}`), &w))
	require.Error(t, json.Unmarshal([]byte(`{"id":"1","type":"running","coords":"x"}`), &w))
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		5:         "5",
		0.25:      "0.25",
		0:         "0",
		1e20:      "100000000000000000000",
		1e21:      "1e+21",
		-2.5e22:   "-2.5e+22",
		0.000001:  "0.000001",
		1.5e-7:    "1.5e-7",
		123456.75: "123456.75",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
}
