// Package browser implements the map, form, list, alert and geolocation
// collaborators for a page that lives in a remote browser tab. Every call
// becomes a JSON command on the session's stream; events the tab reports come
// back in through Map.Click and Geolocation.Resolve/Fail.
//
// None of the types are safe for concurrent use. The session package
// serializes access.
package browser

import (
	"encoding/json"

	"github.com/nazir19980501/mapty/internal/mapview"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/rs/zerolog/log"
)

const (
	OpMapView       = "map.view"
	OpMapListen     = "map.listen"
	OpMapMarker     = "map.marker"
	OpFormShow      = "form.show"
	OpFormHide      = "form.hide"
	OpFormSecondary = "form.secondary"
	OpFormClear     = "form.clear"
	OpListInsert    = "list.insert"
	OpAlert         = "alert"
	OpGeoLocate     = "geo.locate"
)

// Command is one instruction for the page script.
type Command struct {
	Op       string          `json:"op"`
	Center   *workout.Coords `json:"center,omitempty"`
	Zoom     int             `json:"zoom,omitempty"`
	Animate  bool            `json:"animate,omitempty"`
	Duration float64         `json:"duration,omitempty"`
	Popup    *mapview.Popup  `json:"popup,omitempty"`
	Type     workout.Type    `json:"type,omitempty"`
	HTML     string          `json:"html,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// Publisher delivers a payload to every tab of a session. stream.Hub is one.
type Publisher interface {
	Broadcast(sessionID string, payload []byte)
}

// Channel sends commands to one session.
type Channel struct {
	pub     Publisher
	session string
}

func NewChannel(pub Publisher, sessionID string) Channel {
	return Channel{pub: pub, session: sessionID}
}

func (c Channel) Session() string { return c.session }

func (c Channel) Send(cmd Command) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		log.Error().Err(err).Str("op", cmd.Op).Msg("command not encoded")
		return
	}
	c.pub.Broadcast(c.session, payload)
}
