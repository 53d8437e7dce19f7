package service

import (
	"context"
	"fmt"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"
	"treasury-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InvoiceServiceImpl implements ports.InvoiceTracker. Payment matching
// (RecordPayment) and financial settlement (SettleInvoicePayment) are
// deliberately separate steps: recording a payment only accumulates
// paid_amount, while settlement posts the ledger mutation and advances the
// invoice status atomically.
type InvoiceServiceImpl struct {
	invoiceRepo ports.InvoiceRepository
	ledger      ports.AccountLedger
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewInvoiceService creates a new InvoiceServiceImpl.
func NewInvoiceService(
	invoiceRepo ports.InvoiceRepository,
	ledger ports.AccountLedger,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		ledger:      ledger,
		transactor:  transactor,
		log:         log,
	}
}

// CreateInvoice registers a new deposit intent in Pending with zero paid.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, params ports.CreateInvoiceParams) (*domain.Invoice, error) {
	if params.InvoicedAmount.IsNegative() || params.InvoicedAmount.IsZero() {
		return nil, apperror.Validation("Invoiced amount must be positive")
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:             uuid.New(),
		OwnerID:        params.OwnerID,
		Currency:       params.Currency,
		InvoicedAmount: params.InvoicedAmount,
		PaidAmount:     decimal.Zero,
		WalletAddress:  params.WalletAddress,
		DerivationPath: params.DerivationPath,
		Type:           params.Type,
		Status:         domain.InvoiceStatusPending,
		InvoiceDate:    params.InvoiceDate,
		DueDate:        params.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create invoice: %w", err))
	}

	s.log.Info().
		Str("invoice_id", invoice.ID.String()).
		Str("owner_id", invoice.OwnerID.String()).
		Str("invoiced_amount", invoice.InvoicedAmount.String()).
		Str("invoice_type", string(invoice.Type)).
		Msg("invoice created")

	return invoice, nil
}

// RecordPayment matches one on-chain payment against an invoice. It stores
// the payment and bumps paid_amount in one transaction; it never touches the
// invoice status, that is SettleInvoicePayment's job.
func (s *InvoiceServiceImpl) RecordPayment(ctx context.Context, invoiceID uuid.UUID, paymentHash string, amount decimal.Decimal, date time.Time) (*domain.InvoicePayment, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, apperror.Validation("Payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}

	payment := &domain.InvoicePayment{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		PaymentHash: paymentHash,
		Amount:      amount,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.invoiceRepo.CreatePayment(ctx, dbTx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}
	if err := s.invoiceRepo.AddToPaidAmount(ctx, dbTx, invoiceID, amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("add to paid amount: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("invoice_id", invoiceID.String()).
		Str("payment_id", payment.ID.String()).
		Str("payment_hash", paymentHash).
		Str("amount", amount.String()).
		Msg("invoice payment recorded")

	return payment, nil
}

// SettleInvoicePayment posts the ledger credit for a matched payment and
// advances the invoice status, both inside one transaction. The status step
// is a conditional update over the legal predecessor states, so a concurrent
// expiry cannot be overwritten.
func (s *InvoiceServiceImpl) SettleInvoicePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error) {
	payment, err := s.invoiceRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment: %w", err))
	}
	if payment == nil || payment.InvoiceID != invoiceID {
		return nil, apperror.ErrInvoicePaymentNotFound()
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}

	account, err := s.ledger.GetOrCreateAccount(ctx, invoice.OwnerID, invoice.Currency, accountTypeForInvoice(invoice.Type))
	if err != nil {
		return nil, err
	}

	target := domain.InvoiceStatusPartiallyPaid
	var paidDate *time.Time
	if invoice.IsFullyPaid() {
		target = domain.InvoiceStatusPaid
		d := payment.Date
		paidDate = &d
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if _, err := s.ledger.RecordMutationInTx(ctx, dbTx, ports.MutationParams{
		AccountID:        account.ID,
		Type:             domain.MutationInvoiceReceived,
		Amount:           payment.Amount,
		Date:             payment.Date,
		InvoiceID:        &invoice.ID,
		InvoicePaymentID: &payment.ID,
	}); err != nil {
		return nil, err
	}

	// No status step when the invoice already sits at the target, or when
	// the target is unreachable from here (a later partial payment on an
	// Overdue invoice leaves it Overdue).
	if invoice.Status != target && invoice.Status.CanTransitionTo(target) {
		rows, err := s.invoiceRepo.UpdateStatus(ctx, dbTx, invoice.ID, domain.InvoiceStatusPredecessors(target), ports.InvoiceStatusUpdate{
			Status:   target,
			PaidDate: paidDate,
		})
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("update invoice status: %w", err))
		}
		if rows == 0 {
			return nil, apperror.ErrInvoiceInvalidTransition(string(invoice.Status), string(target))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	settled, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload invoice: %w", err))
	}
	if settled == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}

	s.log.Info().
		Str("invoice_id", invoiceID.String()).
		Str("payment_id", paymentID.String()).
		Str("status", string(settled.Status)).
		Str("paid_amount", settled.PaidAmount.String()).
		Msg("invoice payment settled")

	return settled, nil
}

// UpdateStatus moves the invoice to status if the stored state allows it.
func (s *InvoiceServiceImpl) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status domain.InvoiceStatus, expiredDate, notifiedDate *time.Time) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	rows, err := s.invoiceRepo.UpdateStatus(ctx, dbTx, invoiceID, domain.InvoiceStatusPredecessors(status), ports.InvoiceStatusUpdate{
		Status:       status,
		ExpiredDate:  expiredDate,
		NotifiedDate: notifiedDate,
	})
	if err != nil {
		return apperror.InternalError(fmt.Errorf("update invoice status: %w", err))
	}
	if rows == 0 {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("get invoice: %w", err))
		}
		if invoice == nil {
			return apperror.ErrInvoiceNotFound()
		}
		return apperror.ErrInvoiceInvalidTransition(string(invoice.Status), string(status))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// ViewDetails returns the invoice with its matched payments.
func (s *InvoiceServiceImpl) ViewDetails(ctx context.Context, invoiceID uuid.UUID) (*ports.InvoiceDetails, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}

	payments, err := s.invoiceRepo.ListPayments(ctx, invoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list payments: %w", err))
	}

	return &ports.InvoiceDetails{
		Invoice:  *invoice,
		Payments: payments,
	}, nil
}

// ListActiveButExpired pages over active invoices whose due date has passed.
func (s *InvoiceServiceImpl) ListActiveButExpired(ctx context.Context, asOf time.Time, page ports.Page) ([]domain.Invoice, int64, error) {
	invoices, total, err := s.invoiceRepo.ListActiveExpired(ctx, asOf, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list active expired invoices: %w", err))
	}
	return invoices, total, nil
}

// ExpireInvoice moves an active invoice to Expired. An invoice that already
// reached a terminal state is reported as a transition conflict, never
// silently re-expired.
func (s *InvoiceServiceImpl) ExpireInvoice(ctx context.Context, invoiceID uuid.UUID, expiredDate time.Time) error {
	return s.UpdateStatus(ctx, invoiceID, domain.InvoiceStatusExpired, &expiredDate, nil)
}

// accountTypeForInvoice maps what an invoice funds to the custody account it
// credits.
func accountTypeForInvoice(t domain.InvoiceType) domain.AccountType {
	if t == domain.InvoiceTypeLoanCollateral {
		return domain.AccountTypeCollateral
	}
	return domain.AccountTypePrincipal
}
