package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nazir19980501/mapty/internal/form"
	"github.com/nazir19980501/mapty/internal/shared/geo"
	"github.com/nazir19980501/mapty/internal/workout"
)

type point struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (p point) coords() (workout.Coords, error) {
	if p.Lat == nil || p.Lng == nil {
		return workout.Coords{}, fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
	}
	if !geo.Valid(*p.Lat, *p.Lng) {
		return workout.Coords{}, fiber.NewError(fiber.StatusBadRequest, "invalid coordinates")
	}
	return workout.Coords{Lat: *p.Lat, Lng: *p.Lng}, nil
}

func RegisterRoutes(r fiber.Router, reg *Registry) {
	lookup := func(c *fiber.Ctx) (*Session, error) {
		s, ok := reg.Get(c.Params("id"))
		if !ok {
			return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return s, nil
	}

	r.Post("/:id/start", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "session id must be a uuid")
		}
		s, created := reg.Open(id)
		s.do(s.ctrl.Start)

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{"id": s.ID, "workouts": reg.store.Len()})
	})

	r.Post("/:id/location", func(c *fiber.Ctx) error {
		s, err := lookup(c)
		if err != nil {
			return err
		}
		var body struct {
			point
			Error string `json:"error"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var answered, located bool
		if body.Error != "" {
			s.do(func() {
				answered = s.geo.Fail(errors.New(body.Error))
				located = s.ctrl.State().Located
			})
		} else {
			at, err := body.coords()
			if err != nil {
				return err
			}
			s.do(func() {
				answered = s.geo.Resolve(at)
				located = s.ctrl.State().Located
			})
		}
		if !answered {
			return fiber.NewError(fiber.StatusConflict, "no location request pending")
		}
		return c.JSON(fiber.Map{"located": located})
	})

	r.Post("/:id/map/click", func(c *fiber.Ctx) error {
		s, err := lookup(c)
		if err != nil {
			return err
		}
		var body point
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		at, err := body.coords()
		if err != nil {
			return err
		}

		var handled bool
		var state form.State
		s.do(func() {
			handled = s.mapw.Click(at)
			state = s.ctrl.State().Form.State()
		})
		if !handled {
			return fiber.NewError(fiber.StatusConflict, "map not ready")
		}
		return c.JSON(fiber.Map{"form": state.String()})
	})

	r.Post("/:id/form/type", func(c *fiber.Ctx) error {
		s, err := lookup(c)
		if err != nil {
			return err
		}
		var body struct {
			Type string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		kind, ok := workout.ParseType(body.Type)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "type must be running or cycling")
		}

		var current workout.Type
		s.do(func() {
			s.ctrl.ChangeType(kind)
			current = s.ctrl.State().Form.Kind()
		})
		return c.JSON(fiber.Map{"type": current})
	})

	r.Post("/:id/form/submit", func(c *fiber.Ctx) error {
		s, err := lookup(c)
		if err != nil {
			return err
		}
		var in form.Input
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var w workout.Workout
		s.do(func() { w, err = s.ctrl.Submit(c.UserContext(), in) })

		var verr *form.ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(fiber.StatusUnprocessableEntity, form.InvalidInputMessage)
		case errors.Is(err, form.ErrNotOpen):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	})

	r.Post("/:id/list/click", func(c *fiber.Ctx) error {
		s, err := lookup(c)
		if err != nil {
			return err
		}
		var body struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var panned bool
		s.do(func() { panned = s.ctrl.EntryClicked(body.ID) })
		return c.JSON(fiber.Map{"panned": panned})
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if !reg.Close(c.Params("id")) {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
