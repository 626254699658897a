package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobledger/internal/application/backup"
)

// BackupHandler exportación y restauración completa.
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export GET /api/backup (descarga jobledger_backup_<fecha>.json).
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteJSON(c.Context(), &buf); err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("jobledger_backup_%s.json", time.Now().UTC().Format("20060102T150405"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// Restore POST /api/backup/restore: borra todo y lo reemplaza por el documento recibido.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	b, err := backup.Decode(bytes.NewReader(c.Body()))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.WipeAndRestore(c.Context(), b)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
