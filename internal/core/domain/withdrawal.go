package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the stored withdrawal state and the only source of
// truth for listing and guards. Timestamp columns record transition events;
// they are never consulted to infer the current state.
type WithdrawalStatus string

const (
	WithdrawalStatusRequested      WithdrawalStatus = "REQUESTED"
	WithdrawalStatusSent           WithdrawalStatus = "SENT"
	WithdrawalStatusConfirmed      WithdrawalStatus = "CONFIRMED"
	WithdrawalStatusFailed         WithdrawalStatus = "FAILED"
	WithdrawalStatusRefundApproved WithdrawalStatus = "REFUND_APPROVED"
	WithdrawalStatusRefundRejected WithdrawalStatus = "REFUND_REJECTED"
)

// withdrawalTransitions:
//
//	Requested -> Sent -> Confirmed (terminal)
//	{Requested, Sent} -> Failed -> RefundApproved | RefundRejected (terminal)
var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusRequested:      {WithdrawalStatusSent, WithdrawalStatusFailed},
	WithdrawalStatusSent:           {WithdrawalStatusConfirmed, WithdrawalStatusFailed},
	WithdrawalStatusConfirmed:      {},
	WithdrawalStatusFailed:         {WithdrawalStatusRefundApproved, WithdrawalStatusRefundRejected},
	WithdrawalStatusRefundApproved: {},
	WithdrawalStatusRefundRejected: {},
}

// CanTransitionTo reports whether moving to next is a legal forward step.
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s WithdrawalStatus) IsTerminal() bool {
	return len(withdrawalTransitions[s]) == 0
}

// CountsTowardDailyLimit reports whether a withdrawal in this status consumes
// the owner's daily limit. Failed and refunded-back withdrawals do not.
func (s WithdrawalStatus) CountsTowardDailyLimit() bool {
	return s != WithdrawalStatusFailed && s != WithdrawalStatusRefundApproved
}

// Beneficiary is a withdrawal destination address registered by an owner.
// Rows are append-only and duplicates are permitted.
type Beneficiary struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	BlockchainKey string    `json:"blockchain_key"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

// Withdrawal is an outbound transfer moving through the guarded lifecycle.
// Refund fields may only be populated while transitioning out of Failed.
type Withdrawal struct {
	ID                 uuid.UUID        `json:"id"`
	BeneficiaryID      uuid.UUID        `json:"beneficiary_id"`
	OwnerID            uuid.UUID        `json:"owner_id"`
	Currency           CurrencyKey      `json:"currency"`
	RequestAmount      decimal.Decimal  `json:"request_amount"`
	SentAmount         *decimal.Decimal `json:"sent_amount,omitempty"`
	SentHash           *string          `json:"sent_hash,omitempty"`
	Status             WithdrawalStatus `json:"status"`
	RequestDate        time.Time        `json:"request_date"`
	SentDate           *time.Time       `json:"sent_date,omitempty"`
	ConfirmedDate      *time.Time       `json:"confirmed_date,omitempty"`
	FailedDate         *time.Time       `json:"failed_date,omitempty"`
	FailureReason      *string          `json:"failure_reason,omitempty"`
	RefundReviewerID   *uuid.UUID       `json:"refund_reviewer_id,omitempty"`
	RefundApprovedDate *time.Time       `json:"refund_approved_date,omitempty"`
	RefundRejectedDate *time.Time       `json:"refund_rejected_date,omitempty"`
	RefundRejectReason *string          `json:"refund_reject_reason,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// State returns the canonical listing state: the stored status, nothing else.
func (w *Withdrawal) State() WithdrawalStatus {
	return w.Status
}
