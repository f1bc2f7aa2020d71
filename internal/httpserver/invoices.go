package httpserver

import (
	"fmt"
	"net/http"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/pdf"
	invoicesvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/invoice"
	"github.com/gin-gonic/gin"
)

func checkoutHandler(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := invoices.Checkout(c.Request.Context(), caller(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"invoice":     inv,
			"downloadUrl": "/invoices/" + inv.ID + "/pdf",
		})
	}
}

func listInvoicesHandler(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := invoices.List(c.Request.Context(), caller(c), c.Query("status"), c.Query("ownerId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invoices": list})
	}
}

func getInvoiceHandler(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := invoices.Get(c.Request.Context(), caller(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func editInvoiceHandler(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Lines []invoicesvc.LineInput `json:"lines"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inv, err := invoices.Edit(c.Request.Context(), caller(c), c.Param("id"), req.Lines)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func voidInvoiceHandler(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reason string `json:"reason"`
		}
		// Body is optional for void.
		_ = c.ShouldBindJSON(&req)
		inv, err := invoices.Void(c.Request.Context(), caller(c), c.Param("id"), req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func invoicePDFHandler(invoices InvoiceService, users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		me := caller(c)
		inv, err := invoices.Get(c.Request.Context(), me, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		owner := me
		if inv.OwnerID != me.ID {
			if u, err := users.Get(c.Request.Context(), me, inv.OwnerID); err == nil {
				owner = *u
			} else {
				owner = domain.User{ID: inv.OwnerID}
			}
		}

		data, err := pdf.Render(*inv, owner)
		if err != nil {
			respondError(c, err)
			return
		}

		fileName := fmt.Sprintf("Factura_%s.pdf", pdf.Number(inv.ID))
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
