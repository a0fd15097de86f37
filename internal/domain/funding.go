package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind names one of the supporting documents of a funding request.
// The value doubles as the multipart field name and the column name.
type DocumentKind string

const (
	DocumentTaxCertificate                DocumentKind = "tax_certificate"
	DocumentSixMonthBankStatement         DocumentKind = "six_month_bank_statement"
	DocumentIDCopy                        DocumentKind = "id_copy"
	DocumentCSDReport                     DocumentKind = "csd_report"
	DocumentCompanyRegistration           DocumentKind = "company_registration_document"
	DocumentSupplierQuotation             DocumentKind = "supplier_quotation"
	DocumentPurchaseOrderOrCompanyInvoice DocumentKind = "purchase_order_or_company_invoice"
)

// RequiredDocuments is the fixed, ordered set of documents every funding
// request carries. Uploads and validation walk it in this order.
var RequiredDocuments = []DocumentKind{
	DocumentTaxCertificate,
	DocumentSixMonthBankStatement,
	DocumentIDCopy,
	DocumentCSDReport,
	DocumentCompanyRegistration,
	DocumentSupplierQuotation,
	DocumentPurchaseOrderOrCompanyInvoice,
}

func (k DocumentKind) String() string { return string(k) }

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentTaxCertificate, DocumentSixMonthBankStatement, DocumentIDCopy,
		DocumentCSDReport, DocumentCompanyRegistration, DocumentSupplierQuotation,
		DocumentPurchaseOrderOrCompanyInvoice:
		return true
	}
	return false
}

// FundingStatus is the review status of a funding request. Only Pending is
// set by the submission pipeline.
type FundingStatus string

const (
	FundingStatusPending     FundingStatus = "Pending"
	FundingStatusUnderReview FundingStatus = "UnderReview"
	FundingStatusApproved    FundingStatus = "Approved"
	FundingStatusRejected    FundingStatus = "Rejected"
)

func (s FundingStatus) String() string { return string(s) }

func (s FundingStatus) IsValid() bool {
	switch s {
	case FundingStatusPending, FundingStatusUnderReview, FundingStatusApproved, FundingStatusRejected:
		return true
	}
	return false
}

// FundingRequest is a client's request for funding together with the
// references of all its stored documents.
type FundingRequest struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	CompanyName       string
	EndUserDepartment string
	FundingType       string
	FundingAmount     decimal.Decimal
	Status            FundingStatus
	Documents         map[DocumentKind]string
	CreatedAt         time.Time
}

// HasAllDocuments reports whether every required document has a non-empty reference.
func (r *FundingRequest) HasAllDocuments() bool {
	for _, kind := range RequiredDocuments {
		if r.Documents[kind] == "" {
			return false
		}
	}
	return true
}

// FundingRequestSummary is the listing projection of a funding request.
type FundingRequestSummary struct {
	ID          uuid.UUID
	FundingType string
	Status      FundingStatus
	CreatedAt   time.Time
}
