package billing

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// Títulos del documento.
const (
	TitleIssued  = "FAKTURA"
	TitlePreview = "NÁHLED FAKTURY (KONCEPT)"
)

// DocumentUseCase genera la representación (PDF o HTML imprimible) de la factura de un trabajo.
// Generar el documento cuenta como exportación: la factura queda bloqueada.
type DocumentUseCase struct {
	txRunner ports.TxRunner
	invoices *InvoiceUseCase
	pdf      InvoicePDFGenerator
	html     InvoiceHTMLRenderer
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	txRunner ports.TxRunner,
	invoices *InvoiceUseCase,
	pdf InvoicePDFGenerator,
	html InvoiceHTMLRenderer,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner: txRunner,
		invoices: invoices,
		pdf:      pdf,
		html:     html,
	}
}

// PDF marca la factura como exportada y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el trabajo o la factura no existen.
func (uc *DocumentUseCase) PDF(ctx context.Context, jobID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.Document(ctx, jobID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, Filename(doc.Invoice, "pdf"), nil
}

// HTML marca la factura como exportada y escribe la vista previa imprimible en w.
func (uc *DocumentUseCase) HTML(ctx context.Context, jobID string, w io.Writer) error {
	doc, err := uc.Document(ctx, jobID)
	if err != nil {
		return err
	}
	if err := uc.html.RenderInvoiceHTML(w, doc); err != nil {
		return fmt.Errorf("html: %w", err)
	}
	return nil
}

// Document marca la exportación y reúne configuración, trabajo, factura y registros.
func (uc *DocumentUseCase) Document(ctx context.Context, jobID string) (*InvoiceDocument, error) {
	if _, err := uc.invoices.MarkExported(ctx, jobID); err != nil {
		return nil, err
	}

	doc := &InvoiceDocument{}
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		settings, err := repos.Settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("document: settings: %w", err)
		}
		if settings == nil {
			settings = &entity.Settings{}
		}
		job, err := repos.Jobs.GetByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("document: job: %w", err)
		}
		if job == nil {
			return domain.ErrNotFound
		}
		inv, err := loadInvoice(ctx, repos, jobID)
		if err != nil {
			return err
		}
		entries, err := repos.Entries.ListByJob(ctx, jobID)
		if err != nil {
			return fmt.Errorf("document: entries: %w", err)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if !entries[i].WorkDate.Equal(entries[j].WorkDate) {
				return entries[i].WorkDate.Before(entries[j].WorkDate)
			}
			return entries[i].TimeFrom < entries[j].TimeFrom
		})

		doc.Settings = settings
		doc.Job = job
		doc.Invoice = inv
		doc.Entries = entries
		doc.DueDate = inv.DueDate()
		doc.Title = TitlePreview
		if inv.State == entity.InvoiceStateIssued {
			doc.Title = TitleIssued
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Filename nombre de archivo a partir del número de factura (o "koncept" si no tiene).
func Filename(inv *entity.Invoice, ext string) string {
	name := "koncept-" + inv.ID
	if inv.NumberText != "" {
		name = strings.NewReplacer("/", "-", ",", "-", " ", "_").Replace(inv.NumberText)
	}
	return fmt.Sprintf("faktura_%s.%s", name, ext)
}
