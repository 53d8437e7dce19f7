package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType distinguishes what a custody account holds for its owner.
type AccountType string

const (
	AccountTypeCollateral AccountType = "COLLATERAL"
	AccountTypePrincipal  AccountType = "PRINCIPAL"
	AccountTypeFee        AccountType = "FEE"
)

// CurrencyKey identifies a chain-specific token: the CAIP-2 chain id plus the
// token identifier on that chain. Amounts under a CurrencyKey are always in
// the token's base units.
type CurrencyKey struct {
	BlockchainKey string `json:"blockchain_key"` // e.g. "eip155:1"
	TokenID       string `json:"token_id"`       // e.g. "eip155:1/erc20:0xdac17f958d2ee523a2206206994597c13d831ec7"
}

// String returns the sortable "blockchain/token" form used for ordering.
func (c CurrencyKey) String() string {
	return c.BlockchainKey + "/" + c.TokenID
}

// Account is a per-(owner, currency, type) custody account. Balance is
// maintained alongside the mutation log and must always equal the sum of the
// account's mutation amounts.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Currency  CurrencyKey     `json:"currency"`
	Type      AccountType     `json:"account_type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MutationType classifies an append-only ledger entry.
type MutationType string

const (
	MutationInvoiceReceived     MutationType = "INVOICE_RECEIVED"
	MutationWithdrawalRequested MutationType = "WITHDRAWAL_REQUESTED"
	MutationWithdrawalRefunded  MutationType = "WITHDRAWAL_REFUNDED"
	MutationSettlementIn        MutationType = "SETTLEMENT_IN"
	MutationSettlementOut       MutationType = "SETTLEMENT_OUT"
	MutationManualAdjustment    MutationType = "MANUAL_ADJUSTMENT"
)

// AccountMutation is one immutable entry in an account's ledger. The signed
// Amount is in base units; Date ordering is significant for history queries.
type AccountMutation struct {
	ID               uuid.UUID       `json:"id"`
	AccountID        uuid.UUID       `json:"account_id"`
	Type             MutationType    `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Date             time.Time       `json:"date"`
	InvoiceID        *uuid.UUID      `json:"invoice_id,omitempty"`
	WithdrawalID     *uuid.UUID      `json:"withdrawal_id,omitempty"`
	InvoicePaymentID *uuid.UUID      `json:"invoice_payment_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
