package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/metrics"
	mysqlinfra "stockroom/internal/infrastructure/mysql"
	"stockroom/internal/ledger/service"
)

const MaxNotesLength = 500

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// ActorReader finds the user recording an operation.
type ActorReader interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
}

type ShelfResolver interface {
	ResolveShelf(ctx context.Context, shelfID string) (*domain.Location, error)
}

type StockLedger interface {
	RecordPurchase(ctx context.Context, cmd service.PurchaseCommand) (*service.PurchaseResult, error)
	RecordSale(ctx context.Context, cmd service.SaleCommand) (*service.SaleResult, error)
	Reconcile(ctx context.Context, productID string) (*service.Reconciliation, error)
}

// PurchaseOutcome is a committed purchase with the shelf it was stored on.
type PurchaseOutcome struct {
	*service.PurchaseResult
	Location domain.Location
}

// TransactionRecorder checks a purchase or sale before it reaches the
// ledger: input shape first, then the referenced product and shelf. Nothing
// is written until every check passed.
type TransactionRecorder struct {
	users    ActorReader
	products ProductReader
	shelves  ShelfResolver
	ledger   StockLedger
	metrics  *metrics.LedgerMetrics
	logger   *zap.Logger
	retry    RetryPolicy
}

func NewTransactionRecorder(
	users ActorReader,
	products ProductReader,
	shelves ShelfResolver,
	ledger StockLedger,
	m *metrics.LedgerMetrics,
	logger *zap.Logger,
	retry RetryPolicy,
) *TransactionRecorder {
	return &TransactionRecorder{
		users:    users,
		products: products,
		shelves:  shelves,
		ledger:   ledger,
		metrics:  m,
		logger:   logger,
		retry:    retry,
	}
}

func (uc *TransactionRecorder) RecordPurchase(ctx context.Context, in dto.PurchaseInput) (*PurchaseOutcome, error) {
	start := time.Now()
	outcome, err := uc.recordPurchase(ctx, in)
	uc.observe(metrics.OperationPurchase, start, err)
	if err == nil {
		uc.metrics.PurchaseRecorded(in.Quantity)
	}
	return outcome, err
}

func (uc *TransactionRecorder) recordPurchase(ctx context.Context, in dto.PurchaseInput) (*PurchaseOutcome, error) {
	actorID, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("actor identity is required")
	}

	if err := validatePurchase(in); err != nil {
		return nil, err
	}

	if err := uc.knownActor(ctx, actorID); err != nil {
		return nil, err
	}
	if _, err := uc.activeProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	location, err := uc.shelves.ResolveShelf(ctx, in.ShelfID)
	if err != nil {
		return nil, lookupError(err)
	}

	uc.logger.Debug("purchase pre-validation passed",
		zap.String("productId", in.ProductID),
		zap.String("location", location.Code()),
		zap.Int("quantity", in.Quantity),
	)

	cmd := service.PurchaseCommand{
		ProductID:  in.ProductID,
		ShelfID:    in.ShelfID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		RecordedBy: actorID,
		Notes:      in.Notes,
	}

	var result *service.PurchaseResult
	err = withRetry(ctx, uc.retry, uc.logger, func(attempt int) error {
		if attempt > 1 {
			uc.metrics.Retried(metrics.OperationPurchase)
		}
		var err error
		result, err = uc.ledger.RecordPurchase(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PurchaseOutcome{PurchaseResult: result, Location: *location}, nil
}

func (uc *TransactionRecorder) RecordSale(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error) {
	start := time.Now()
	result, err := uc.recordSale(ctx, in)
	uc.observe(metrics.OperationSale, start, err)
	if err == nil {
		uc.metrics.SaleRecorded(in.Quantity)
	}
	return result, err
}

func (uc *TransactionRecorder) recordSale(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error) {
	actorID, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("actor identity is required")
	}

	if err := validateSale(in); err != nil {
		return nil, err
	}

	if err := uc.knownActor(ctx, actorID); err != nil {
		return nil, err
	}
	product, err := uc.activeProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// Cost price is snapshotted from the catalog at sale time. It is not a
	// FIFO or weighted-average cost.
	cmd := service.SaleCommand{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		CostPrice:  product.CostPrice,
		RecordedBy: actorID,
		Notes:      in.Notes,
	}

	var result *service.SaleResult
	err = withRetry(ctx, uc.retry, uc.logger, func(attempt int) error {
		if attempt > 1 {
			uc.metrics.Retried(metrics.OperationSale)
		}
		var err error
		result, err = uc.ledger.RecordSale(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reconcile audits the ledger of an existing product.
func (uc *TransactionRecorder) Reconcile(ctx context.Context, productID string) (*service.Reconciliation, error) {
	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return nil, lookupError(err)
	}
	return uc.ledger.Reconcile(ctx, productID)
}

// knownActor rejects ids that do not belong to an active user, so a record
// never references a missing user on any storage driver.
func (uc *TransactionRecorder) knownActor(ctx context.Context, actorID string) error {
	user, err := uc.users.FindUser(ctx, actorID)
	if _, notFound := apperrors.IsNotFoundError(err); notFound {
		return apperrors.NewUnauthorizedError("actor is not a known user")
	}
	if err != nil {
		return lookupError(err)
	}
	if !user.IsActive {
		return apperrors.NewUnauthorizedError("actor is not an active user")
	}
	return nil
}

func (uc *TransactionRecorder) activeProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, lookupError(err)
	}
	if !product.IsActive {
		return nil, apperrors.NewProductNotFoundError(productID)
	}
	return product, nil
}

func (uc *TransactionRecorder) observe(operation string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		code := errorCode(err)
		outcome = metrics.OutcomeRejected
		if code == apperrors.CodeTransient || code == apperrors.CodeInternal {
			outcome = metrics.OutcomeFailure
		}
		uc.metrics.Rejected(operation, code)
	}
	uc.metrics.ObserveDuration(operation, outcome, time.Since(start))
}

func errorCode(err error) string {
	if ve, ok := apperrors.IsValidationError(err); ok {
		return ve.Code
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		return nf.Code
	}
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		return apperrors.CodeInsufficientStock
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		return apperrors.CodeUnauthorized
	}
	if _, ok := apperrors.IsTransientError(err); ok {
		return apperrors.CodeTransient
	}
	return apperrors.CodeInternal
}

// lookupError marks storage failures of the reads done before the ledger
// transaction as transient, like failures inside it.
func lookupError(err error) error {
	if _, ok := apperrors.IsTransientError(err); ok {
		return err
	}
	if mysqlinfra.IsUnavailable(err) || mysqlinfra.IsRetryable(err) {
		return apperrors.NewTransientError("storage unavailable", err)
	}
	return err
}

func validatePurchase(in dto.PurchaseInput) error {
	if err := validateQuantity(in.Quantity); err != nil {
		return err
	}
	if problem := amountProblem(in.Quantity, in.UnitCost); problem != "" {
		return apperrors.NewInvalidCostError("unitCost", problem)
	}
	return validateNotes(in.Notes)
}

func validateSale(in dto.SaleInput) error {
	if err := validateQuantity(in.Quantity); err != nil {
		return err
	}
	if problem := amountProblem(in.Quantity, in.UnitPrice); problem != "" {
		return apperrors.NewInvalidPriceError("unitPrice", problem)
	}
	return validateNotes(in.Notes)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewInvalidQuantityError(quantity)
	}
	if quantity > domain.MaxQuantity {
		return apperrors.NewQuantityOutOfRangeError(quantity, domain.MaxQuantity)
	}
	return nil
}

// amountProblem checks the unit amount and the line total it produces
// against the money columns.
func amountProblem(quantity int, unit decimal.Decimal) string {
	if problem := domain.MoneyProblem(unit); problem != "" {
		return problem
	}
	if domain.LineTotal(quantity, unit).GreaterThan(domain.MaxMoney) {
		return "times quantity must be at most " + domain.MaxMoney.StringFixed(domain.MoneyScale)
	}
	return ""
}

func validateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
		return apperrors.NewValidationError("notes too long", apperrors.ValidationDetail{
			Field:   "notes",
			Message: "must be at most 500 characters",
		})
	}
	return nil
}
