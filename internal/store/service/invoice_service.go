package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/costing"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/numbering"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

// errInvoiceGate is the single conflated error for a mutation against an
// invoice that is missing or already approved. Callers cannot tell which.
var errInvoiceGate = apperr.NotFound("Material Invoice not found or Approved")

// InvoiceItemInput is one submitted line item. Cost is accepted for wire
// compatibility but ignored; the server recomputes it.
type InvoiceItemInput struct {
	Category    entity.MaterialCategory `json:"category"`
	HNSCode     string                  `json:"hnsCode"`
	Description string                  `json:"description"`
	Quantity    decimal.Decimal         `json:"quantity"`
	RatePerUnit decimal.Decimal         `json:"ratePerUnit"`
	Cost        decimal.Decimal         `json:"cost"`
}

// MaterialInvoiceInput is the create/update payload. totalCost, serial, MRN
// and GIN numbers are never taken from it.
type MaterialInvoiceInput struct {
	DateOfReceipt         string                  `json:"dateOfReceipt"`
	VendorName            string                  `json:"vendorName"`
	InvoiceNumber         string                  `json:"invoiceNumber"`
	InvoiceDate           string                  `json:"invoiceDate"`
	DeliveryChallanNumber string                  `json:"deliveryChallanNumber"`
	VehicleNumber         string                  `json:"vehicleNumber"`
	MaterialCategory      entity.MaterialCategory `json:"materialCategory"`
	HNSCode               string                  `json:"hnsCode"`
	UOM                   string                  `json:"uom"`
	VendorContactNumber   string                  `json:"vendorContactNumber"`
	PONumber              string                  `json:"poNumber"`
	PODate                string                  `json:"poDate"`
	PurposeOfMaterial     string                  `json:"purposeOfMaterial"`
	CGST                  decimal.Decimal         `json:"cgst"`
	SGST                  decimal.Decimal         `json:"sgst"`
	TransportationCharges decimal.Decimal         `json:"transportationCharges"`
	InvoiceAttachment     string                  `json:"invoiceAttachment"`
	Remarks               string                  `json:"remarks"`
	Items                 []InvoiceItemInput      `json:"InvoiceMaterialItem"`
}

// InvoiceService implements the material-invoice pipeline: server-side
// costing, transactional numbering, and the approval state machine.
type InvoiceService struct {
	db       *gorm.DB
	invoices *repository.MaterialInvoiceRepository
	counters *repository.CounterRepository
	storage  AttachmentStore
	logger   *zap.Logger
}

func NewInvoiceService(
	db *gorm.DB,
	invoices *repository.MaterialInvoiceRepository,
	counters *repository.CounterRepository,
	storage AttachmentStore,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		db:       db,
		invoices: invoices,
		counters: counters,
		storage:  storage,
		logger:   logger,
	}
}

// UploadAttachment stores a PDF attachment ahead of the invoice insert.
// The upload is a compensable side effect outside the transaction: if the
// insert fails afterwards the orphaned object is logged, not rolled back.
func (s *InvoiceService) UploadAttachment(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if s.storage == nil {
		return "", apperr.New(500, "Attachment storage is not configured")
	}
	return s.storage.Upload(ctx, content, filename, contentType)
}

// Create validates the payload, computes costs, draws the three reference
// numbers and inserts parent plus items in one transaction.
func (s *InvoiceService) Create(ctx context.Context, userID string, input *MaterialInvoiceInput) (*entity.MaterialInvoice, error) {
	invoice, err := s.buildInvoice(input)
	if err != nil {
		return nil, err
	}
	invoice.CreatedBy = userID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, assign := range []struct {
			kind numbering.Kind
			dst  *string
		}{
			{numbering.KindSerial, &invoice.SerialNumber},
			{numbering.KindMRN, &invoice.MRNNumber},
			{numbering.KindGIN, &invoice.GINNumber},
		} {
			ref, err := s.counters.NextTx(ctx, tx, assign.kind)
			if err != nil {
				return err
			}
			*assign.dst = ref
		}
		return s.invoices.CreateTx(ctx, tx, invoice)
	})
	if err != nil {
		if invoice.InvoiceAttachment != "" {
			s.logger.Warn("invoice insert failed after attachment upload, orphaned object needs cleanup",
				zap.String("attachment", invoice.InvoiceAttachment), zap.Error(err))
		}
		return nil, fmt.Errorf("create material invoice: %w", err)
	}
	return invoice, nil
}

// Update rejects missing or approved invoices, then recomputes costs and
// replaces the line items wholesale. Reference numbers never change.
func (s *InvoiceService) Update(ctx context.Context, id string, input *MaterialInvoiceInput) (*entity.MaterialInvoice, error) {
	existing, err := s.invoices.FindByID(ctx, id)
	if err != nil || existing.Approved {
		return nil, errInvoiceGate
	}

	invoice, err := s.buildInvoice(input)
	if err != nil {
		return nil, err
	}
	invoice.ID = existing.ID
	invoice.SerialNumber = existing.SerialNumber
	invoice.MRNNumber = existing.MRNNumber
	invoice.GINNumber = existing.GINNumber
	invoice.Approved = existing.Approved
	invoice.Paid = existing.Paid
	invoice.PaidOn = existing.PaidOn
	invoice.CreatedBy = existing.CreatedBy
	invoice.CreatedAt = existing.CreatedAt
	if invoice.InvoiceAttachment == "" {
		invoice.InvoiceAttachment = existing.InvoiceAttachment
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.invoices.ReplaceTx(ctx, tx, invoice)
	})
	if err != nil {
		return nil, fmt.Errorf("update material invoice: %w", err)
	}
	return invoice, nil
}

// Delete removes an unapproved invoice with its items.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	existing, err := s.invoices.FindByID(ctx, id)
	if err != nil || existing.Approved {
		return errInvoiceGate
	}
	if err := s.invoices.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete material invoice: %w", err)
	}
	return nil
}

// Get loads one invoice with items.
func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.MaterialInvoice, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperr.NotFound("Material Invoice not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get material invoice: %w", err)
	}
	return invoice, nil
}

// List returns all invoices, newest first.
func (s *InvoiceService) List(ctx context.Context) ([]entity.MaterialInvoice, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list material invoices: %w", err)
	}
	return invoices, nil
}

// Approve sets the material-approval flag. Approval is one-directional in
// the exposed flow; once approved the document is immutable to update and
// delete, which is what makes the transition terminal.
func (s *InvoiceService) Approve(ctx context.Context, id string, approved bool) (*entity.MaterialInvoice, error) {
	if err := s.invoices.SetApproved(ctx, id, approved); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("Material Invoice not found")
		}
		return nil, fmt.Errorf("approve material invoice: %w", err)
	}
	return s.Get(ctx, id)
}

// ApprovePayment sets the payment flag. Payment approval is a second gate
// on top of material approval: an unapproved invoice cannot be paid.
func (s *InvoiceService) ApprovePayment(ctx context.Context, id string, approved bool) (*entity.MaterialInvoice, error) {
	existing, err := s.invoices.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperr.NotFound("Material Invoice not found")
	}
	if err != nil {
		return nil, fmt.Errorf("approve invoice payment: %w", err)
	}
	if approved && !existing.Approved {
		return nil, apperr.Conflict("Material Invoice must be approved before payment")
	}

	var paidOn interface{}
	if approved {
		paidOn = time.Now()
	}
	if err := s.invoices.SetPaid(ctx, id, approved, paidOn); err != nil {
		return nil, fmt.Errorf("approve invoice payment: %w", err)
	}
	return s.Get(ctx, id)
}

// buildInvoice validates the payload and produces an entity with every
// derived field (item costs, totalCost) recomputed. Client-submitted cost
// and totalCost values are discarded here.
func (s *InvoiceService) buildInvoice(input *MaterialInvoiceInput) (*entity.MaterialInvoice, error) {
	if input.VendorName == "" {
		return nil, apperr.Validation("vendorName is required")
	}
	if input.InvoiceNumber == "" {
		return nil, apperr.Validation("invoiceNumber is required")
	}
	if !input.MaterialCategory.Valid() {
		return nil, apperr.Validationf("materialCategory %q is not a valid category", input.MaterialCategory)
	}
	for i, item := range input.Items {
		if !item.Category.Valid() {
			return nil, apperr.Validationf("item %d: category %q is not a valid category", i+1, item.Category)
		}
	}

	dateOfReceipt, err := parseDate("dateOfReceipt", input.DateOfReceipt)
	if err != nil {
		return nil, err
	}
	invoiceDate, err := parseDate("invoiceDate", input.InvoiceDate)
	if err != nil {
		return nil, err
	}
	var poDate time.Time
	if input.PODate != "" {
		if poDate, err = parseDate("poDate", input.PODate); err != nil {
			return nil, err
		}
	}

	lineItems := make([]costing.LineItem, len(input.Items))
	for i, item := range input.Items {
		lineItems[i] = costing.LineItem{Quantity: item.Quantity, RatePerUnit: item.RatePerUnit}
	}
	costs, totalCost, err := costing.Compute(lineItems, costing.Surcharges{
		CGST:                  input.CGST,
		SGST:                  input.SGST,
		TransportationCharges: input.TransportationCharges,
	})
	if err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceMaterialItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.InvoiceMaterialItem{
			Category:    item.Category,
			HNSCode:     item.HNSCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			RatePerUnit: item.RatePerUnit,
			Cost:        costs[i],
		}
	}

	return &entity.MaterialInvoice{
		DateOfReceipt:         dateOfReceipt,
		VendorName:            input.VendorName,
		VendorContactNumber:   input.VendorContactNumber,
		InvoiceNumber:         input.InvoiceNumber,
		InvoiceDate:           invoiceDate,
		DeliveryChallanNumber: input.DeliveryChallanNumber,
		VehicleNumber:         input.VehicleNumber,
		MaterialCategory:      input.MaterialCategory,
		HNSCode:               input.HNSCode,
		UOM:                   input.UOM,
		PONumber:              input.PONumber,
		PODate:                poDate,
		PurposeOfMaterial:     input.PurposeOfMaterial,
		CGST:                  input.CGST,
		SGST:                  input.SGST,
		TransportationCharges: input.TransportationCharges,
		TotalCost:             totalCost,
		InvoiceAttachment:     input.InvoiceAttachment,
		Remarks:               input.Remarks,
		Items:                 items,
	}, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperr.Validationf("%s is required", field)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validationf("%s: invalid date %q", field, value)
}
