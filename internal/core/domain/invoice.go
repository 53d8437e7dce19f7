package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored invoice state. It is the single source of
// truth: timestamps record when a transition happened, never what state the
// invoice is in.
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusExpired       InvoiceStatus = "EXPIRED"
)

// invoiceTransitions encodes Pending -> {PartiallyPaid, Overdue} -> {Paid, Expired}.
// Paid and Expired are terminal, so an invoice can never be both.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusPending:       {InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusPaid, InvoiceStatusExpired},
	InvoiceStatusPartiallyPaid: {InvoiceStatusOverdue, InvoiceStatusPaid, InvoiceStatusExpired},
	InvoiceStatusOverdue:       {InvoiceStatusPaid, InvoiceStatusExpired},
	InvoiceStatusPaid:          {},
	InvoiceStatusExpired:       {},
}

// CanTransitionTo reports whether moving to next is a legal forward step.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

// InvoiceStatusPredecessors returns the states from which next may be
// reached. Conditional updates use this as the expected-state set.
func InvoiceStatusPredecessors(next InvoiceStatus) []InvoiceStatus {
	var from []InvoiceStatus
	for current, allowed := range invoiceTransitions {
		for _, a := range allowed {
			if a == next {
				from = append(from, current)
			}
		}
	}
	return from
}

// ActiveInvoiceStatuses are the non-terminal states eligible for expiry.
func ActiveInvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusPending, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue}
}

// InvoiceType says what a deposit invoice is for.
type InvoiceType string

const (
	InvoiceTypeLoanCollateral InvoiceType = "LOAN_COLLATERAL"
	InvoiceTypeLoanPrincipal  InvoiceType = "LOAN_PRINCIPAL"
	InvoiceTypeLoanRepayment  InvoiceType = "LOAN_REPAYMENT"
)

// Invoice is a deposit intent: the platform expects InvoicedAmount at
// WalletAddress. PaidAmount accumulates matched on-chain payments.
type Invoice struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	Currency       CurrencyKey     `json:"currency"`
	InvoicedAmount decimal.Decimal `json:"invoiced_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	WalletAddress  string          `json:"wallet_address"`
	DerivationPath string          `json:"derivation_path"`
	Type           InvoiceType     `json:"type"`
	Status         InvoiceStatus   `json:"status"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	ExpiredDate    *time.Time      `json:"expired_date,omitempty"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	NotifiedDate   *time.Time      `json:"notified_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsFullyPaid reports whether accumulated payments cover the invoiced amount.
func (i *Invoice) IsFullyPaid() bool {
	return i.PaidAmount.GreaterThanOrEqual(i.InvoicedAmount)
}

// InvoicePayment is one matched on-chain payment against an invoice. An
// invoice may accumulate several.
type InvoicePayment struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	PaymentHash string          `json:"payment_hash"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
