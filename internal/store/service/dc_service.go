package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

// DcEntryInput is the delivery-challan create payload.
type DcEntryInput struct {
	DateOfReceipt       string          `json:"dateOfReceipt"`
	VendorName          string          `json:"vendorName"`
	DcNumber            string          `json:"dcNumber"`
	VehicleNumber       string          `json:"vehicleNumber"`
	MaterialDescription string          `json:"materialDescription"`
	UOM                 string          `json:"uom"`
	ReceivedQuantity    decimal.Decimal `json:"receivedQuantity"`
	PurposeOfMaterial   string          `json:"purposeOfMaterial"`
	DcAttachment        string          `json:"dcAttachment"`
	BMRNNumber          string          `json:"bmrnNumber"`
	Approved            *bool           `json:"approved"`
	Remarks             string          `json:"remarks"`
}

// DcService implements the delivery-challan pipeline.
type DcService struct {
	dcs *repository.DcEntryRepository
}

func NewDcService(dcs *repository.DcEntryRepository) *DcService {
	return &DcService{dcs: dcs}
}

// Create validates and inserts a DC entry.
func (s *DcService) Create(ctx context.Context, userID string, input *DcEntryInput) (*entity.DcEntry, error) {
	if input.VendorName == "" {
		return nil, apperr.Validation("vendorName is required")
	}
	if input.DcNumber == "" {
		return nil, apperr.Validation("dcNumber is required")
	}
	if input.ReceivedQuantity.IsNegative() {
		return nil, apperr.Validation("receivedQuantity must not be negative")
	}
	dateOfReceipt, err := parseDate("dateOfReceipt", input.DateOfReceipt)
	if err != nil {
		return nil, err
	}

	approved := false
	if input.Approved != nil {
		approved = *input.Approved
	}

	dc := &entity.DcEntry{
		DateOfReceipt:       dateOfReceipt,
		VendorName:          input.VendorName,
		DcNumber:            input.DcNumber,
		VehicleNumber:       input.VehicleNumber,
		MaterialDescription: input.MaterialDescription,
		UOM:                 input.UOM,
		ReceivedQuantity:    input.ReceivedQuantity,
		PurposeOfMaterial:   input.PurposeOfMaterial,
		DcAttachment:        input.DcAttachment,
		BMRNNumber:          input.BMRNNumber,
		Remarks:             input.Remarks,
		Approved:            approved,
		CreatedBy:           userID,
	}
	if err := s.dcs.Create(ctx, dc); err != nil {
		return nil, fmt.Errorf("create dc entry: %w", err)
	}
	return dc, nil
}

// Get loads one DC entry.
func (s *DcService) Get(ctx context.Context, id string) (*entity.DcEntry, error) {
	dc, err := s.dcs.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperr.NotFound("DC entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get dc entry: %w", err)
	}
	return dc, nil
}

// List returns all DC entries, newest first.
func (s *DcService) List(ctx context.Context) ([]entity.DcEntry, error) {
	dcs, err := s.dcs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dc entries: %w", err)
	}
	return dcs, nil
}

// Approve sets the approval flag. The DC flow has no re-approval guard;
// the call is idempotent on an already-approved entry.
func (s *DcService) Approve(ctx context.Context, id string, approved bool) (*entity.DcEntry, error) {
	if err := s.dcs.SetApproved(ctx, id, approved); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("DC entry not found")
		}
		return nil, fmt.Errorf("approve dc entry: %w", err)
	}
	return s.Get(ctx, id)
}
