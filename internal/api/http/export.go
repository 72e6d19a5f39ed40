package httpapi

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-data-explorer/internal/export"
)

func (h *handler) exportAnnualCSV(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteAnnualCSV(&buf, v.Result.Points); err != nil {
		return h.exportError("annual csv", err)
	}
	c.Attachment(export.FileName(q.Country, "annual_anomaly", "csv"))
	return c.Send(buf.Bytes())
}

func (h *handler) exportDecadeCSV(c *fiber.Ctx) error {
	q, v, err := h.viewFor(c)
	if err != nil {
		return err
	}
	if err := requireResult(v); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteDecadeCSV(&buf, v.Decades); err != nil {
		return h.exportError("decade csv", err)
	}
	c.Attachment(export.FileName(q.Country, "decade_anomaly", "csv"))
	return c.Send(buf.Bytes())
}

func (h *handler) snapshot(c *fiber.Ctx) (export.Snapshot, error) {
	q, v, err := h.viewFor(c)
	if err != nil {
		return export.Snapshot{}, err
	}
	s, err := export.NewSnapshot(v, chartsFor(q, v))
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return s, requireResult(v)
		}
		return s, h.exportError("snapshot", err)
	}
	c.Set("X-Export-ID", s.ID)
	return s, nil
}

func (h *handler) exportHTML(c *fiber.Ctx) error {
	s, err := h.snapshot(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, s); err != nil {
		return h.exportError("html report", err)
	}
	c.Attachment(export.FileName(s.Country, "climate_report", "html"))
	return c.Send(buf.Bytes())
}

func (h *handler) exportXLSX(c *fiber.Ctx) error {
	s, err := h.snapshot(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, s); err != nil {
		return h.exportError("xlsx report", err)
	}
	c.Attachment(export.FileName(s.Country, "climate_report", "xlsx"))
	return c.Send(buf.Bytes())
}

func (h *handler) exportError(what string, err error) error {
	h.log.Errorf("export %s: %v", what, err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to export "+what)
}
