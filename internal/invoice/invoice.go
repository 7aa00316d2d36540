// Package invoice renders the printable bill of one service as a PDF file
// named service_bill_<id>.pdf in the working directory.
package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/vehicle-service-management/internal/config"
	"github.com/iliyamo/vehicle-service-management/internal/model"
	"github.com/iliyamo/vehicle-service-management/internal/repository"
)

// ErrServiceNotFound is returned for an unknown service id.  No file is
// written in that case.
var ErrServiceNotFound = errors.New("service not found")

// Source provides a service header and its line items.
type Source interface {
	Get(ctx context.Context, id int64) (*model.ServiceRecord, error)
	Parts(ctx context.Context, serviceID int64) ([]model.ServicePart, error)
}

// Invoice describes a rendered bill.  PartsTotal is the sum of the line
// totals printed; StoredTotal is the record's Total_Cost as read, which may
// differ when the store has not recomputed it yet.
type Invoice struct {
	ServiceID   int64               `json:"service_id"`
	Path        string              `json:"file"`
	Record      model.ServiceRecord `json:"service"`
	Lines       []model.ServicePart `json:"parts"`
	PartsTotal  decimal.Decimal     `json:"parts_total"`
	StoredTotal decimal.Decimal     `json:"total_cost"`
	Opened      bool                `json:"opened"`
}

// FileName is the deterministic file name of a service's bill.
func FileName(serviceID int64) string {
	return fmt.Sprintf("service_bill_%d.pdf", serviceID)
}

// Renderer writes bills.
type Renderer struct {
	src    Source
	shop   config.ShopProfile
	opener Opener
	log    log.FieldLogger
}

// NewRenderer constructs a Renderer.  A nil opener never opens a viewer.
func NewRenderer(src Source, shop config.ShopProfile, opener Opener, logger log.FieldLogger) *Renderer {
	if opener == nil {
		opener = NoopOpener{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Renderer{src: src, shop: shop, opener: opener, log: logger}
}

// Render fetches the service and its line items, writes the PDF and
// tries to open it.  Failing to open a viewer is logged, not returned.
func (r *Renderer) Render(ctx context.Context, serviceID int64) (*Invoice, error) {
	rec, err := r.src.Get(ctx, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	lines, err := r.src.Parts(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ServiceID:   serviceID,
		Path:        FileName(serviceID),
		Record:      *rec,
		Lines:       lines,
		PartsTotal:  decimal.Zero,
		StoredTotal: rec.TotalCost,
	}
	for _, l := range lines {
		inv.PartsTotal = inv.PartsTotal.Add(l.TotalPartCost)
	}

	pdf := r.document(inv)
	if err := pdf.OutputFileAndClose(inv.Path); err != nil {
		return nil, fmt.Errorf("write %s: %w", inv.Path, err)
	}

	if err := r.opener.Open(inv.Path); err != nil {
		r.log.WithError(err).WithField("file", inv.Path).Info("could not open invoice viewer")
	} else {
		_, noop := r.opener.(NoopOpener)
		inv.Opened = !noop
	}
	return inv, nil
}

// document lays out the bill.  Rows flow onto new pages automatically.
func (r *Renderer) document(inv *Invoice) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(r.shop.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 6, tr(r.shop.Address), "", 1, "C", false, 0, "")
	if r.shop.Phone != "" {
		pdf.CellFormat(0, 6, tr("Phone: "+r.shop.Phone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	rec := inv.Record
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Service ID: %d    Vehicle ID: %d    Mechanic ID: %d", rec.ID, rec.VehicleID, rec.MechanicID), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Service Date: %s    Status: %s", rec.ServiceDate, rec.Status)), "", 1, "", false, 0, "")
	pdf.MultiCell(0, 6, tr("Problem: "+rec.Problem), "", "", false)
	pdf.Ln(6)

	widths := []float64{80, 30, 40, 40}
	header := func() {
		pdf.SetFont("Arial", "B", 12)
		for i, h := range []string{"Part Name", "Qty", "Unit Price", "Total"} {
			ln := 0
			if i == len(widths)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 8, h, "1", ln, "", false, 0, "")
		}
		pdf.SetFont("Arial", "", 11)
	}
	header()
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, l := range inv.Lines {
		if pdf.GetY()+8 > pageH-bottom {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(widths[0], 8, tr(l.PartName), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", l.QuantityUsed), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 8, l.UnitPrice.StringFixed(2), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 8, l.TotalPartCost.StringFixed(2), "1", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Total Parts: "+inv.PartsTotal.StringFixed(2), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, "Service Total Cost: "+inv.StoredTotal.StringFixed(2), "", 1, "", false, 0, "")
	if r.shop.Footer != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr(r.shop.Footer), "", "C", false)
	}
	return pdf
}
