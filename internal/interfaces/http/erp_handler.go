package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/application/fetchjob"
	"github.com/jhoicas/Etiquetas-api/internal/application/session"
)

// OverviewGenerator produce la hoja resumen A4 de una carga terminada.
type OverviewGenerator interface {
	Generate(res *erpdata.Result) ([]byte, error)
}

// ERPHandler maneja conexión y trabajos de carga del ERP.
type ERPHandler struct {
	svc      *erpdata.Service
	jobs     *fetchjob.Registry
	overview OverviewGenerator
	tracker  *session.Tracker
}

// NewERPHandler construye el handler.
func NewERPHandler(svc *erpdata.Service, jobs *fetchjob.Registry, overview OverviewGenerator, tracker *session.Tracker) *ERPHandler {
	return &ERPHandler{svc: svc, jobs: jobs, overview: overview, tracker: tracker}
}

// Connect prueba la conexión con el ERP.
// POST /api/erp/connect
func (h *ERPHandler) Connect(c *fiber.Ctx) error {
	h.tracker.Set(session.Connecting)
	if err := h.svc.Connect(c.Context()); err != nil {
		h.tracker.Set(session.Disconnected)
		return mapError(c, err)
	}
	h.tracker.Set(session.Connected)
	return c.JSON(fiber.Map{"status": session.Connected.String()})
}

// StartFetch lanza una carga en segundo plano y devuelve el id del trabajo.
// POST /api/erp/fetch
func (h *ERPHandler) StartFetch(c *fiber.Ctx) error {
	var in dto.FetchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	job, err := h.jobs.Start(erpdata.Kind(in.Kind), in.Limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.JobResponse{
		ID:     job.ID,
		Kind:   string(job.Kind),
		Status: string(job.Status()),
	})
}

// GetJob devuelve el estado del trabajo; con los datos cuando terminó.
// GET /api/erp/fetch/:id
func (h *ERPHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}

	out := dto.JobResponse{
		ID:     job.ID,
		Kind:   string(job.Kind),
		Status: string(job.Status()),
	}
	switch job.Status() {
	case fetchjob.StatusDone:
		res, err := job.Result()
		if err != nil {
			return mapError(c, err)
		}
		out.Entries = res.Count()
		out.Data = dto.FromResult(res)
	case fetchjob.StatusFailed:
		if _, err := job.Result(); err != nil {
			out.Error = err.Error()
		}
	}
	return c.JSON(out)
}

// CancelJob cancela un trabajo. La cancelación es consultiva: la llamada
// remota en curso no se aborta, su resultado tardío se descarta.
// DELETE /api/erp/fetch/:id
func (h *ERPHandler) CancelJob(c *fiber.Ctx) error {
	if err := h.jobs.Cancel(c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Overview genera la hoja resumen A4 de un trabajo terminado.
// GET /api/erp/fetch/:id/overview.pdf
func (h *ERPHandler) Overview(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	res, err := job.Result()
	if err != nil {
		return mapError(c, err)
	}

	pdf, err := h.overview.Generate(res)
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
