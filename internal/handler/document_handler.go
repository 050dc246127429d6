package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/middleware"
	"bizdocs/internal/service"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler handles invoice and quotation generation and the document registry.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateInvoice handles POST /api/v1/invoices
// @Summary Generate an invoice
// @Description Render a GST tax invoice as PDF, publish it, optionally email it, and record it
// @Tags documents
// @Accept json
// @Produce json
// @Param request body document.InvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=service.GenerationResult} "Invoice generated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 422 {object} ErrorResponseBody "Layout overflow"
// @Failure 502 {object} ErrorResponseBody "Upload or mail failed"
// @Security BearerAuth
// @Router /invoices [post]
func (h *DocumentHandler) CreateInvoice(c *gin.Context) {
	subject, ok := extractSubject(c)
	if !ok {
		return
	}

	var req document.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}

	res, err := h.documentService.GenerateInvoice(c.Request.Context(), &req, subject)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, res)
}

// CreateQuotation handles POST /api/v1/quotations
// @Summary Generate a quotation
// @Description Render a quotation as PDF, publish it, optionally email it, and record it
// @Tags documents
// @Accept json
// @Produce json
// @Param request body document.QuotationRequest true "Quotation details"
// @Success 201 {object} Response{data=service.GenerationResult} "Quotation generated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 422 {object} ErrorResponseBody "Layout overflow"
// @Failure 502 {object} ErrorResponseBody "Upload or mail failed"
// @Security BearerAuth
// @Router /quotations [post]
func (h *DocumentHandler) CreateQuotation(c *gin.Context) {
	subject, ok := extractSubject(c)
	if !ok {
		return
	}

	var req document.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}

	res, err := h.documentService.GenerateQuotation(c.Request.Context(), &req, subject)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, res)
}

// ExportTaxAnalysis handles POST /api/v1/invoices/tax-analysis
// @Summary Export the tax analysis of an invoice
// @Description Aggregate the invoice items and download the breakdown as an Excel workbook
// @Tags documents
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body document.InvoiceRequest true "Invoice details"
// @Success 200 {file} file "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices/tax-analysis [post]
func (h *DocumentHandler) ExportTaxAnalysis(c *gin.Context) {
	var req document.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", bindingMessage(err))
		return
	}

	out, err := h.documentService.ExportTaxAnalysis(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.FileName))
	c.Data(http.StatusOK, contentTypeXLSX, out.Data)
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Description Get a generated document's registry entry
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.DocumentRecord} "Document details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	rec, err := h.documentService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description List generated documents, newest first, optionally filtered by kind
// @Tags documents
// @Produce json
// @Param kind query string false "invoice or quotation"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DocumentRecord,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid kind"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	kind := domain.DocumentKind(c.Query("kind"))

	recs, total, err := h.documentService.List(c.Request.Context(), kind, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// extractSubject extracts the caller's token subject from the request context.
// Returns false if auth context is missing (error response already written).
func extractSubject(c *gin.Context) (string, bool) {
	subject, err := middleware.GetSubject(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return "", false
	}
	return subject, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
