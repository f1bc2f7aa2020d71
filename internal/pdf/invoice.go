// Package pdf renders invoices as downloadable PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	companyName = "GESTOR DE INVENTARIO FC COMEBACKS"
	companyLine = "Sistema de Gestion de Inventario | NIT: 123456789-0 | info@fccomebacks.com"
	taxRate     = "0.12"
)

// Render produces the PDF document for an invoice. The owner is only used
// for the client block; all amounts come from the invoice snapshot.
func Render(inv domain.Invoice, owner domain.User) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(44, 62, 80)
	doc.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, companyLine, "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(231, 76, 60)
	doc.CellFormat(0, 8, "FACTURA "+Number(inv.ID), "", 1, "R", false, 0, "")

	doc.SetTextColor(44, 62, 80)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Fecha: "+inv.CreatedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Estado: "+inv.Status, "", 1, "R", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, "DATOS DEL CLIENTE", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	client := strings.TrimSpace(owner.Name + " " + owner.Surname)
	if client == "" {
		client = "Cliente no disponible"
	}
	doc.CellFormat(0, 5, "Cliente: "+client, "", 1, "L", false, 0, "")
	if owner.Email != "" {
		doc.CellFormat(0, 5, "Email: "+owner.Email, "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(236, 240, 241)
	doc.CellFormat(90, 8, "PRODUCTO", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 8, "PRECIO UNIT.", "1", 0, "R", true, 0, "")
	doc.CellFormat(20, 8, "CANT.", "1", 0, "R", true, 0, "")
	doc.CellFormat(40, 8, "SUBTOTAL", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		lineTotal := money(int64(line.Quantity) * line.UnitPriceCents)
		subtotal = subtotal.Add(lineTotal)

		name := line.ProductName
		if len(name) > 40 {
			name = name[:40]
		}
		doc.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, "Q"+money(line.UnitPriceCents).StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, "Q"+lineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	iva := subtotal.Mul(decimal.RequireFromString(taxRate))
	doc.CellFormat(140, 6, "Subtotal:", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 6, "Q"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	doc.CellFormat(140, 6, "IVA (12%):", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 6, "Q"+iva.StringFixed(2), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(231, 76, 60)
	doc.CellFormat(140, 8, "TOTAL:", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, "Q"+money(inv.TotalCents).StringFixed(2), "", 1, "R", false, 0, "")

	if inv.Status == domain.InvoiceVoided {
		doc.Ln(8)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 8, "*** FACTURA ANULADA ***", "", 1, "C", false, 0, "")
		if inv.VoidReason != "" {
			doc.SetFont("Helvetica", "", 10)
			doc.SetTextColor(44, 62, 80)
			doc.CellFormat(0, 6, "Motivo: "+inv.VoidReason, "", 1, "C", false, 0, "")
		}
	}

	doc.SetY(-30)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(127, 140, 141)
	doc.CellFormat(0, 4, "Gracias por su compra. Esta factura es generada electronicamente.", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 4, "Generada el "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Number derives the short human-facing invoice number from the invoice id.
func Number(id string) string {
	trimmed := strings.ReplaceAll(id, "-", "")
	if len(trimmed) > 8 {
		trimmed = trimmed[len(trimmed)-8:]
	}
	return strings.ToUpper(trimmed)
}

func money(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
