package workout

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nazir19980501/mapty/internal/shared/geo"
)

const defaultRadiusKm = 5

func RegisterRoutes(r fiber.Router, store *Store) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(store.All())
	})

	r.Get("/near", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil || !geo.Valid(lat, lng) {
			return fiber.NewError(fiber.StatusBadRequest, "valid lat and lng required")
		}
		radius, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
		if radius <= 0 {
			radius = defaultRadiusKm
		}
		return c.JSON(Near(store.All(), Coords{Lat: lat, Lng: lng}, radius))
	})

	r.Get("/export.gpx", func(c *fiber.Ctx) error {
		body, err := GPX(store.All())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Attachment("workouts.gpx")
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		return c.Send(body)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		w, ok := store.FindByID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "workout not found")
		}
		return c.JSON(w)
	})

	r.Get("/:id/export.fit", func(c *fiber.Ctx) error {
		w, ok := store.FindByID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "workout not found")
		}
		body, err := FIT(w)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Attachment(w.ID + ".fit")
		c.Set(fiber.HeaderContentType, "application/vnd.ant.fit")
		return c.Send(body)
	})
}

// Near returns the workouts within radiusKm of center, newest first.
func Near(workouts []Workout, center Coords, radiusKm float64) []Workout {
	out := []Workout{}
	for _, w := range workouts {
		if geo.HaversineKm(center.Lat, center.Lng, w.Coords.Lat, w.Coords.Lng) <= radiusKm {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
