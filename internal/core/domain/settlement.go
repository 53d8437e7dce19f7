package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetMapping groups a chain-specific token under a canonical exchange
// asset symbol and the exchange's network symbol for that chain.
type AssetMapping struct {
	TokenID string `json:"token_id"` // CAIP-19 token identifier
	Asset   string `json:"asset"`    // e.g. "USDT"
	Network string `json:"network"`  // exchange network symbol, e.g. "ERC20"
}

// HotWalletBalance is a live on-chain balance snapshot for one hot wallet.
type HotWalletBalance struct {
	BlockchainKey string          `json:"blockchain_key"`
	Address       string          `json:"address"`
	Balance       decimal.Decimal `json:"balance"`
}

// ChainBalanceResult is one chain's outcome in a fan-out balance query.
// Err is set when that chain's query failed; the other chains are unaffected.
type ChainBalanceResult struct {
	BlockchainKey string          `json:"blockchain_key"`
	Address       string          `json:"address,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Err           error           `json:"-"`
}

// SettlementTransfer is one chain's slice of a rebalancing plan. Amount is
// signed: positive moves funds to the exchange, negative withdraws from it.
// Dust transfers are kept in the plan but marked Skipped; their amount is
// deliberately not redistributed.
type SettlementTransfer struct {
	BlockchainKey string          `json:"blockchain_key"`
	Network       string          `json:"network"`
	HotAddress    string          `json:"hot_address"`
	HotBalance    decimal.Decimal `json:"hot_balance"`
	Amount        decimal.Decimal `json:"amount"`
	Skipped       bool            `json:"skipped"`
}

// SettlementPlan is the pure output of plan computation: no side effects
// have happened yet when a plan exists.
type SettlementPlan struct {
	Asset           string               `json:"asset"`
	Ratio           decimal.Decimal      `json:"ratio"`
	HotTotal        decimal.Decimal      `json:"hot_total"`
	ExchangeBalance decimal.Decimal      `json:"exchange_balance"`
	Amount          decimal.Decimal      `json:"amount"`
	Transfers       []SettlementTransfer `json:"transfers"`
	FailedChains    []ChainBalanceResult `json:"failed_chains,omitempty"`
	ComputedAt      time.Time            `json:"computed_at"`
}

// SettlementResult records the outcome of executing one chain's transfer.
// Failures are captured here per chain, never raised for the whole batch.
type SettlementResult struct {
	Asset            string          `json:"asset"`
	BlockchainKey    string          `json:"blockchain_key"`
	OriginalBalance  decimal.Decimal `json:"original_balance"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TxHash           string          `json:"tx_hash,omitempty"`
	Success          bool            `json:"success"`
	Error            string          `json:"error,omitempty"`
	ExecutedAt       time.Time       `json:"executed_at"`
}
