// Package web serves the page the browser client runs in.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/google/uuid"
)

//go:embed templates/index.html
var templates embed.FS

//go:embed static
var static embed.FS

var page = template.Must(template.ParseFS(templates, "templates/index.html"))

type pageData struct {
	Title     string
	SessionID string
}

// RegisterRoutes serves the index page at / and the client assets under
// /static. Every page load gets a new session id.
func RegisterRoutes(r fiber.Router) {
	r.Get("/", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := page.Execute(&buf, pageData{Title: "mapty", SessionID: uuid.NewString()}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	r.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(static),
		PathPrefix: "static",
		Browse:     false,
	}))
}
