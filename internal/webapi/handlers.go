package webapi

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/tsawler/matboard/layoutfile"
	"github.com/tsawler/matboard/model"
	"github.com/tsawler/matboard/render"
	"github.com/tsawler/matboard/store"
)

// ============================================================
// Layout Handler
// ============================================================

// LayoutHandler serves saved layouts and rendered snapshots.
type LayoutHandler struct {
	store *store.Store
}

func NewLayoutHandler(s *store.Store) *LayoutHandler {
	return &LayoutHandler{store: s}
}

// Register attaches all layout routes to the app.
func (h *LayoutHandler) Register(app *fiber.App) {
	app.Get("/layouts", h.List)
	app.Post("/layouts", h.Save)
	app.Get("/layouts/:id", h.Get)
	app.Put("/layouts/:id", h.Replace)
	app.Delete("/layouts/:id", h.Delete)
	app.Get("/layouts/:id/svg", h.RenderSVG)
	app.Get("/layouts/:id/png", h.RenderPNG)
}

type layoutSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SavedAt string `json:"saved_at"`
}

// List returns all saved layouts without their payloads.
func (h *LayoutHandler) List(c fiber.Ctx) error {
	recs, err := h.store.List(context.Background())
	if err != nil {
		return serverError(c, err)
	}
	out := make([]layoutSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, layoutSummary{
			ID:      rec.ID,
			Name:    rec.Name,
			SavedAt: rec.SavedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}

// Save stores a new layout. The request body is the layout document itself;
// the name comes from the "name" query parameter. The document is parsed
// before storing so malformed layouts are rejected up front.
func (h *LayoutHandler) Save(c fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, "missing name query parameter")
	}
	if _, err := layoutfile.Unmarshal(c.Body()); err != nil {
		return badRequest(c, "invalid layout: "+err.Error())
	}

	rec, err := h.store.Save(context.Background(), name, c.Body())
	if err != nil {
		return serverError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": rec.ID})
}

// Get returns the stored layout document verbatim.
func (h *LayoutHandler) Get(c fiber.Ctx) error {
	rec, err := h.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}
		return serverError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(rec.Data)
}

// Replace overwrites an existing layout's document.
func (h *LayoutHandler) Replace(c fiber.Ctx) error {
	if _, err := layoutfile.Unmarshal(c.Body()); err != nil {
		return badRequest(c, "invalid layout: "+err.Error())
	}
	err := h.store.Replace(context.Background(), c.Params("id"), c.Body())
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// Delete removes a layout.
func (h *LayoutHandler) Delete(c fiber.Ctx) error {
	removed, err := h.store.Delete(context.Background(), c.Params("id"))
	if err != nil {
		return serverError(c, err)
	}
	if !removed {
		return notFound(c)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// RenderSVG returns an SVG drawing of a stored layout. The margin in
// centimeters is configurable via the "margin" query parameter.
func (h *LayoutHandler) RenderSVG(c fiber.Ctx) error {
	doc, err := h.loadDocument(c)
	if err != nil {
		return err
	}
	margin := queryFloat(c, "margin", 10)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(render.SVG(doc, margin))
}

// RenderPNG returns a raster preview of a stored layout. Resolution is
// configurable via the "ppcm" (pixels per centimeter) query parameter.
func (h *LayoutHandler) RenderPNG(c fiber.Ctx) error {
	doc, err := h.loadDocument(c)
	if err != nil {
		return err
	}
	img := render.Raster(doc, render.RasterOptions{
		PixelsPerCm: queryFloat(c, "ppcm", 4),
		MarginCm:    queryFloat(c, "margin", 10),
	})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return serverError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// loadDocument fetches and parses a stored layout, writing the error
// response itself when something goes wrong.
func (h *LayoutHandler) loadDocument(c fiber.Ctx) (*model.Document, error) {
	rec, err := h.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(c)
		}
		return nil, serverError(c, err)
	}
	d, err := layoutfile.Unmarshal(rec.Data)
	if err != nil {
		return nil, serverError(c, err)
	}
	return d, nil
}

func queryFloat(c fiber.Ctx, key string, defaultVal float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "layout not found"})
}

func serverError(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
