package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

func sampleDocument() *billing.InvoiceDocument {
	issue := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	inv := entity.NewDraftInvoice("inv-1", "job-1", issue)
	inv.State = entity.InvoiceStateIssued
	inv.IssueDate = &issue
	inv.DueDays = 14
	inv.NumberText = "0001/01,2025"
	inv.Total = decimal.RequireFromString("2600")
	return &billing.InvoiceDocument{
		Title:    billing.TitleIssued,
		Settings: &entity.Settings{CompanyName: "RAVITO", Currency: "Kc"},
		Job:      &entity.Job{ID: "job-1", Title: "Oprava strechy"},
		Invoice:  inv,
		Entries: []*entity.WorkEntry{{
			ID: "e1", JobID: "job-1", WorkDate: issue, TimeFrom: "08:00", TimeTo: "12:00",
			HourRate: decimal.NewFromInt(650), MinutesTotal: 240, PriceTotal: decimal.NewFromInt(2600),
		}},
		DueDate: inv.DueDate(),
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_NoEntries(t *testing.T) {
	doc := sampleDocument()
	doc.Entries = nil
	doc.Settings = nil
	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateInvoicePDF_Incomplete(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), &billing.InvoiceDocument{})
	assert.Error(t, err)
}
