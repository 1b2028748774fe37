package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialCategory classifies materials on invoices and their line items.
type MaterialCategory string

const (
	CategoryCivil      MaterialCategory = "CIVIL"
	CategoryPlumbing   MaterialCategory = "PLUMBING"
	CategoryElectrical MaterialCategory = "ELECTRICAL"
	CategoryInterior   MaterialCategory = "INTERIOR"
	CategoryExterior   MaterialCategory = "EXTERIOR"
	CategoryOther      MaterialCategory = "OTHER"
)

// Valid reports whether c is one of the closed category set.
func (c MaterialCategory) Valid() bool {
	switch c {
	case CategoryCivil, CategoryPlumbing, CategoryElectrical,
		CategoryInterior, CategoryExterior, CategoryOther:
		return true
	}
	return false
}

// MaterialInvoice is one received vendor invoice. SerialNumber, MRNNumber
// and GINNumber are system-assigned on creation and never change afterwards;
// TotalCost is derived server-side and never trusted from the client.
type MaterialInvoice struct {
	ID                    string           `json:"id" gorm:"type:varchar(36);primaryKey"`
	SerialNumber          string           `json:"serialNumber" gorm:"size:32;not null;uniqueIndex"`
	MRNNumber             string           `json:"mrnNumber" gorm:"column:mrn_number;size:32;not null;uniqueIndex"`
	GINNumber             string           `json:"ginNumber" gorm:"column:gin_number;size:32;not null;uniqueIndex"`
	DateOfReceipt         time.Time        `json:"dateOfReceipt" gorm:"not null"`
	VendorName            string           `json:"vendorName" gorm:"size:256;not null;index"`
	VendorContactNumber   string           `json:"vendorContactNumber" gorm:"size:32"`
	InvoiceNumber         string           `json:"invoiceNumber" gorm:"size:64;not null;index"`
	InvoiceDate           time.Time        `json:"invoiceDate" gorm:"not null"`
	DeliveryChallanNumber string           `json:"deliveryChallanNumber" gorm:"size:64"`
	VehicleNumber         string           `json:"vehicleNumber" gorm:"size:32"`
	MaterialCategory      MaterialCategory `json:"materialCategory" gorm:"size:16;not null;index"`
	HNSCode               string           `json:"hnsCode" gorm:"column:hns_code;size:32"`
	UOM                   string           `json:"uom" gorm:"column:uom;size:16"`
	PONumber              string           `json:"poNumber" gorm:"column:po_number;size:64"`
	PODate                time.Time        `json:"poDate" gorm:"column:po_date"`
	PurposeOfMaterial     string           `json:"purposeOfMaterial" gorm:"size:256"`
	CGST                  decimal.Decimal  `json:"cgst" gorm:"column:cgst;type:decimal(15,2);not null"`
	SGST                  decimal.Decimal  `json:"sgst" gorm:"column:sgst;type:decimal(15,2);not null"`
	TransportationCharges decimal.Decimal  `json:"transportationCharges" gorm:"type:decimal(15,2);not null"`
	TotalCost             decimal.Decimal  `json:"totalCost" gorm:"type:decimal(15,2);not null"`
	InvoiceAttachment     string           `json:"invoiceAttachment" gorm:"size:512"`
	Remarks               string           `json:"remarks" gorm:"type:text"`
	Approved              bool             `json:"approved" gorm:"not null;default:false;index"`
	Paid                  bool             `json:"paid" gorm:"not null;default:false"`
	PaidOn                *time.Time       `json:"paidOn"`
	CreatedBy             string           `json:"createdBy" gorm:"size:36;index"`
	CreatedAt             time.Time        `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt             time.Time        `json:"updatedAt" gorm:"autoUpdateTime"`

	Items []InvoiceMaterialItem `json:"InvoiceMaterialItem" gorm:"foreignKey:MaterialInvoiceID;constraint:OnDelete:CASCADE"`
}

func (MaterialInvoice) TableName() string {
	return "material_invoices"
}

func (m *MaterialInvoice) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// InvoiceMaterialItem is one line item. It has no lifecycle of its own:
// items are created with their parent and replaced wholesale on update.
// Cost is always recomputed as quantity * ratePerUnit.
type InvoiceMaterialItem struct {
	ID                string           `json:"id" gorm:"type:varchar(36);primaryKey"`
	MaterialInvoiceID string           `json:"materialInvoiceId" gorm:"size:36;not null;index"`
	Category          MaterialCategory `json:"category" gorm:"size:16;not null"`
	HNSCode           string           `json:"hnsCode" gorm:"column:hns_code;size:32"`
	Description       string           `json:"description" gorm:"size:512"`
	Quantity          decimal.Decimal  `json:"quantity" gorm:"type:decimal(15,3);not null"`
	RatePerUnit       decimal.Decimal  `json:"ratePerUnit" gorm:"type:decimal(15,2);not null"`
	Cost              decimal.Decimal  `json:"cost" gorm:"type:decimal(15,2);not null"`
}

func (InvoiceMaterialItem) TableName() string {
	return "invoice_material_items"
}

func (i *InvoiceMaterialItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
