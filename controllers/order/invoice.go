package orderControllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

// GET /orders/:id/invoice
// Renders the invoice PDF for a paid order and streams it as a download.
func DownloadInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").Preload("Address").Preload("User").
			First(&order, "id = ? AND user_id = ?", c.Param("id"), userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			}
			return
		}

		pdf, err := buildInvoicePDF(order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
			return
		}

		filename := fmt.Sprintf("invoice-%d.pdf", order.ID)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

func buildInvoicePDF(order models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "CarveLane")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for order #%d", order.ID))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Date: "+order.CreatedAt.Format("02 Jan 2006"))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Payment reference: "+order.PaymentID)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, order.Address.FullName)
	pdf.Ln(5)
	pdf.Cell(0, 6, order.Address.AddressLine1)
	pdf.Ln(5)
	if order.Address.AddressLine2 != "" {
		pdf.Cell(0, 6, order.Address.AddressLine2)
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", order.Address.City, order.Address.State, order.Address.PostalCode))
	pdf.Ln(5)
	pdf.Cell(0, 6, order.Address.Country)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "Rs "+item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, "Rs "+item.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(145, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Rs "+order.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
