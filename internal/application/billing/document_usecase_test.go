package billing_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

type fakePDF struct{ doc *billing.InvoiceDocument }

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-fake"), nil
}

type fakeHTML struct{}

func (fakeHTML) RenderInvoiceHTML(w io.Writer, doc *billing.InvoiceDocument) error {
	_, err := fmt.Fprintf(w, "<h1>%s %s</h1>", doc.Title, doc.Invoice.NumberText)
	return err
}

func TestDocument_PDFMarksExported(t *testing.T) {
	e := newEnv(t)
	e.createJob(t, "a")
	e.prepare(t, "a", jan)
	_, err := e.uc.Issue(context.Background(), "a")
	require.NoError(t, err)

	gen := &fakePDF{}
	docs := billing.NewDocumentUseCase(e.runner, e.uc, gen, fakeHTML{})

	data, name, err := docs.PDF(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, "faktura_0001-01-2025.pdf", name)
	require.NotNil(t, gen.doc)
	assert.Equal(t, billing.TitleIssued, gen.doc.Title)
	require.NotNil(t, gen.doc.DueDate)
	assert.Equal(t, jan.AddDate(0, 0, 14), *gen.doc.DueDate)

	assert.NotNil(t, e.invoice(t, "a").ExportedAt)
}

func TestDocument_PreviewLocksDraft(t *testing.T) {
	e := newEnv(t)
	e.createJob(t, "a")
	docs := billing.NewDocumentUseCase(e.runner, e.uc, &fakePDF{}, fakeHTML{})

	var buf bytes.Buffer
	require.NoError(t, docs.HTML(context.Background(), "a", &buf))
	assert.Contains(t, buf.String(), billing.TitlePreview)

	_, err := e.uc.Prepare(context.Background(), "a", jan)
	assert.ErrorIs(t, err, domain.ErrLocked, "lo que ya se miró no se renumera")
}

func TestDocument_NotFound(t *testing.T) {
	e := newEnv(t)
	docs := billing.NewDocumentUseCase(e.runner, e.uc, &fakePDF{}, fakeHTML{})
	_, _, err := docs.PDF(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFilename(t *testing.T) {
	inv := &entity.Invoice{ID: "x1"}
	assert.Equal(t, "faktura_koncept-x1.pdf", billing.Filename(inv, "pdf"))
	inv.NumberText = "0007/03,2025"
	assert.Equal(t, "faktura_0007-03-2025.html", billing.Filename(inv, "html"))
}
