package http

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
)

// InvoiceHandler ciclo de vida y documentos de la factura de un trabajo.
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
	now  func() time.Time
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs, now: time.Now}
}

// Get GET /api/jobs/:id/invoice
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Prepare godoc
// @Summary      Preparar factura (asigna número)
// @Description  issue_date vacío = hoy. Una factura con total 0 no se prepara.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del trabajo"
// @Param        body  body  dto.PrepareInvoiceRequest  false "Fecha de emisión"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/invoice/prepare [post]
func (h *InvoiceHandler) Prepare(c *fiber.Ctx) error {
	var in dto.PrepareInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	issueDate := h.now()
	if s := strings.TrimSpace(in.IssueDate); s != "" {
		d, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: fmt.Sprintf("issue_date debe tener formato %s", dto.DateLayout),
			})
		}
		issueDate = d
	}

	jobID := c.Params("id")
	current, err := h.uc.Get(c.Context(), jobID)
	if err != nil {
		return writeError(c, err)
	}
	if !current.Total.IsPositive() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "EMPTY_INVOICE", Message: "la factura no tiene importe",
		})
	}

	inv, err := h.uc.Prepare(c.Context(), jobID, issueDate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Cancel POST /api/jobs/:id/invoice/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	jobID := c.Params("id")
	if err := h.uc.CancelPrepared(c.Context(), jobID, strings.TrimSpace(in.Reason)); err != nil {
		return writeError(c, err)
	}
	return h.Get(c)
}

// Issue POST /api/jobs/:id/invoice/issue
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	inv, err := h.uc.Issue(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Sent POST /api/jobs/:id/invoice/sent
func (h *InvoiceHandler) Sent(c *fiber.Ctx) error {
	inv, err := h.uc.MarkSent(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Paid POST /api/jobs/:id/paid
func (h *InvoiceHandler) Paid(c *fiber.Ctx) error {
	if err := h.uc.MarkPaid(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "paid"})
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Description  Marca la factura como exportada (queda bloqueada).
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/invoice/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.docs.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// Preview GET /api/jobs/:id/invoice/preview (HTML imprimible; marca la exportación).
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.docs.HTML(c.Context(), c.Params("id"), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
