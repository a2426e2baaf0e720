// Package checkout convierte el carrito en una venta persistida.
//
// La secuencia no es atómica: cabecera, líneas y descuento de stock son
// escrituras independientes. Si un paso falla, los anteriores quedan
// persistidos y el carrito no se vacía.
package checkout

//go:generate mockgen -source=sequencer.go -destination=mock_sequencer_test.go -package=checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pos-service/internal/cart"
	"pos-service/internal/metrics"
	"pos-service/internal/models"
)

var (
	ErrEmptyCart           = errors.New("empty cart")
	ErrInsufficientPayment = errors.New("payment amount is less than total")
)

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) (primitive.ObjectID, error)
	CreateItems(ctx context.Context, items []models.TransactionItem) error
}

type StockWriter interface {
	SetStock(ctx context.Context, id primitive.ObjectID, stock int64) error
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Cart interface {
	Snapshot() ([]cart.Line, decimal.Decimal)
	Clear()
}

type Sequencer struct {
	transactions TransactionStore
	stock        StockWriter
	cart         Cart
	catalog      Refresher
	now          func() time.Time
}

func NewSequencer(transactions TransactionStore, stock StockWriter, c Cart, catalog Refresher) *Sequencer {
	return &Sequencer{
		transactions: transactions,
		stock:        stock,
		cart:         c,
		catalog:      catalog,
		now:          time.Now,
	}
}

// Checkout ejecuta la secuencia completa. Devuelve ErrEmptyCart sin tocar la
// red si el carrito está vacío y *StepError si falla alguna escritura.
func (s *Sequencer) Checkout(ctx context.Context, payment models.PaymentInfo) (*models.Transaction, error) {
	start := s.now()
	lines, total := s.cart.Snapshot()
	if len(lines) == 0 {
		metrics.CheckoutTotal.WithLabelValues("rejected", "precondition").Inc()
		return nil, ErrEmptyCart
	}

	paid, change, err := settle(payment.Amount, total)
	if err != nil {
		metrics.CheckoutTotal.WithLabelValues("rejected", "precondition").Inc()
		return nil, err
	}

	tx := &models.Transaction{
		Code:           fmt.Sprintf("TRX-%d", start.UnixMilli()),
		CustomerName:   orDefault(payment.CustomerName, models.DefaultCustomerName),
		TotalAmount:    total,
		PaymentMethod:  orDefault(payment.Method, models.DefaultPaymentMethod),
		PaymentAmount:  paid,
		ChangeAmount:   change,
		DiscountAmount: decimal.Zero,
		Status:         models.TransactionStatusCompleted,
		CreatedAt:      start,
	}
	log := zap.L().With(zap.String("transaction_code", tx.Code))

	// 1. cabecera
	id, err := s.transactions.Create(ctx, tx)
	if err != nil {
		return nil, s.fail(log, &StepError{Step: StepCreateTransaction, Code: tx.Code, Err: err})
	}
	tx.ID = id

	// 2. líneas
	items := make([]models.TransactionItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.TransactionItem{
			TransactionID: id,
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			Price:         line.SellPrice,
			Subtotal:      line.Subtotal(),
		})
	}
	if err := s.transactions.CreateItems(ctx, items); err != nil {
		return nil, s.fail(log, &StepError{Step: StepCreateItems, Code: tx.Code, TransactionID: id, Err: err})
	}
	tx.Items = items

	// 3. stock, uno por uno y sin rollback
	for _, line := range lines {
		if err := s.stock.SetStock(ctx, line.ProductID, line.Stock-line.Quantity); err != nil {
			productID := line.ProductID
			return nil, s.fail(log, &StepError{
				Step:          StepDecrementStock,
				Code:          tx.Code,
				TransactionID: id,
				ProductID:     &productID,
				Err:           err,
			})
		}
	}

	// 4. éxito
	s.cart.Clear()
	if err := s.catalog.Refresh(ctx); err != nil {
		log.Warn("catalog refresh after checkout failed", zap.Error(err))
	}

	metrics.CheckoutTotal.WithLabelValues("ok", "done").Inc()
	metrics.CheckoutDuration.Observe(s.now().Sub(start).Seconds())
	log.Info("checkout completed",
		zap.String("transaction_id", id.Hex()),
		zap.String("total", total.String()),
		zap.Int("lines", len(lines)),
	)
	return tx, nil
}

func (s *Sequencer) fail(log *zap.Logger, err *StepError) error {
	metrics.CheckoutTotal.WithLabelValues("error", err.Step.String()).Inc()
	log.Error("checkout failed", zap.Stringer("step", err.Step), zap.Error(err.Err))
	return err
}

// settle calcula el pago y el vuelto. Un monto cero es pago exacto.
func settle(amount, total decimal.Decimal) (paid, change decimal.Decimal, err error) {
	if amount.IsZero() {
		return total, decimal.Zero, nil
	}
	if amount.LessThan(total) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: paid %s, total %s", ErrInsufficientPayment, amount, total)
	}
	return amount, amount.Sub(total), nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
