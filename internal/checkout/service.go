package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/customer"
	"storefront-be/internal/governorate"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/packages"
	"storefront-be/internal/pricing"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IncompleteAfter is how long a draft order may sit before it is reported
// as stuck.
const IncompleteAfter = 15 * time.Minute

type CartSource interface {
	Cart(ctx context.Context, session string) (*cart.Store, error)
}

type GovernorateSource interface {
	GetGovernorate(ctx context.Context, id string) (*governorate.Governorate, error)
}

type CustomerSource interface {
	FindOrCreate(ctx context.Context, input customer.CustomerInput) (*customer.Customer, error)
}

type StockSource interface {
	DecrementStock(ctx context.Context, id string, quantity int) (catalog.StockChange, error)
}

// PackageSource resolves package lines into their component products.
type PackageSource interface {
	GetPackage(ctx context.Context, id string) (*packages.Package, error)
}

type Service interface {
	Quote(ctx context.Context, session, governorateID string) (*Quote, error)
	SubmitOrder(ctx context.Context, input SubmitOrderInput) (*Order, error)

	ListOrders(ctx context.Context, opts ListOrdersOptions) ([]*Order, int64, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	ListIncompleteOrders(ctx context.Context) ([]*Order, error)
}

type service struct {
	repo         Repository
	carts        CartSource
	governorates GovernorateSource
	customers    CustomerSource
	stock        StockSource
	packages     PackageSource
	now          func() time.Time
}

func NewService(
	repo Repository,
	carts CartSource,
	governorates GovernorateSource,
	customers CustomerSource,
	stock StockSource,
	pkgs PackageSource,
) Service {
	return &service{
		repo:         repo,
		carts:        carts,
		governorates: governorates,
		customers:    customers,
		stock:        stock,
		packages:     pkgs,
		now:          time.Now,
	}
}

// ComputeTotal adds the governorate's flat shipping cost to the cart total.
func ComputeTotal(cartTotal decimal.Decimal, g *governorate.Governorate) decimal.Decimal {
	return cartTotal.Add(g.ShippingCost)
}

func (s *service) Quote(ctx context.Context, session, governorateID string) (*Quote, error) {
	if strings.TrimSpace(governorateID) == "" {
		return nil, ErrGovernorateRequired
	}

	store, err := s.carts.Cart(ctx, session)
	if err != nil {
		return nil, err
	}
	gov, err := s.governorates.GetGovernorate(ctx, governorateID)
	if err != nil {
		return nil, err
	}

	totals := store.Totals()
	return &Quote{
		Governorate:  gov,
		TotalItems:   totals.TotalItems,
		Subtotal:     pricing.RoundCurrency(totals.TotalPrice),
		ShippingCost: pricing.RoundCurrency(gov.ShippingCost),
		Total:        pricing.RoundCurrency(ComputeTotal(totals.TotalPrice, gov)),
	}, nil
}

// SubmitOrder turns the session's cart into an order. The order is written
// as a draft and promoted to pending only after its items and the stock
// decrements are stored, so an interrupted submission stays visible as a
// draft. Resubmitting with the same idempotency key from the same session
// returns the committed order or ErrOrderIncomplete; a key already used by
// another session is rejected with ErrIdempotencyKeyInUse.
func (s *service) SubmitOrder(ctx context.Context, input SubmitOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitOrder"),
	)
	start := time.Now()

	if strings.TrimSpace(input.GovernorateID) == "" {
		return nil, ErrGovernorateRequired
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, key)
		switch {
		case err == nil:
			if existing.CartSession != input.Session {
				log.Warn("idempotency key reused by another session")
				return nil, ErrIdempotencyKeyInUse
			}
			if existing.Status == StatusDraft {
				return nil, ErrOrderIncomplete
			}
			log.Info("returning previously submitted order", zap.String("order_id", existing.ID))
			return existing, nil
		case !errors.Is(err, ErrOrderNotFound):
			return nil, err
		}
	} else {
		key = uuid.NewString()
	}

	store, err := s.carts.Cart(ctx, input.Session)
	if err != nil {
		return nil, err
	}
	lines := store.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	gov, err := s.governorates.GetGovernorate(ctx, input.GovernorateID)
	if err != nil {
		return nil, err
	}

	custInput := input.Customer
	custInput.GovernorateID = &gov.ID
	cust, err := s.customers.FindOrCreate(ctx, custInput)
	if err != nil {
		log.Warn("customer lookup failed", zap.Error(err))
		return nil, err
	}

	subtotal := cart.ComputeTotals(lines).TotalPrice
	order := &Order{
		ID:              uuid.NewString(),
		OrderNumber:     utils.GenerateOrderNumber(),
		CustomerID:      cust.ID.String(),
		CustomerName:    strings.TrimSpace(input.Customer.FullName),
		CustomerPhone:   utils.NormalizePhone(input.Customer.Phone),
		GovernorateID:   gov.ID,
		ShippingAddress: strings.TrimSpace(input.Customer.Address),
		Notes:           input.Notes,
		Subtotal:        pricing.RoundCurrency(subtotal),
		ShippingCost:    pricing.RoundCurrency(gov.ShippingCost),
		Total:           pricing.RoundCurrency(ComputeTotal(subtotal, gov)),
		Status:          StatusDraft,
		IdempotencyKey:  key,
		CartSession:     input.Session,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			return nil, s.duplicate(ctx, key, input.Session)
		}
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("order_id", order.ID), zap.String("order_number", order.OrderNumber))

	order.Items = snapshotItems(order.ID, lines)
	if err := s.repo.CreateOrderItems(ctx, order.ID, order.Items); err != nil {
		return nil, s.incomplete(log, "order items", err)
	}

	if err := s.decrementStock(ctx, lines); err != nil {
		return nil, s.incomplete(log, "stock update", err)
	}

	if err := s.repo.UpdateOrderStatus(ctx, order.ID, StatusPending); err != nil {
		return nil, s.incomplete(log, "order promotion", err)
	}
	order.Status = StatusPending

	if err := store.ClearCart(ctx); err != nil {
		log.Warn("order committed but cart was not cleared", zap.Error(err))
	}

	elapsed := time.Since(start)
	metrics.OrdersSubmitted.Inc()
	metrics.SubmitDuration.Observe(elapsed.Seconds())
	log.Info("order submitted",
		zap.String("total", order.Total.StringFixed(2)),
		zap.Duration("duration", elapsed),
	)
	return order, nil
}

// duplicate classifies a key that was taken between the lookup and the
// insert.
func (s *service) duplicate(ctx context.Context, key, session string) error {
	existing, err := s.repo.GetOrderByIdempotencyKey(ctx, key)
	if err == nil && existing.CartSession != session {
		return ErrIdempotencyKeyInUse
	}
	return ErrOrderIncomplete
}

func (s *service) incomplete(log *zap.Logger, step string, err error) error {
	metrics.OrdersIncomplete.Inc()
	log.Error("order left in draft", zap.String("step", step), zap.Error(err))
	return fmt.Errorf("%s: %w", step, err)
}

func snapshotItems(orderID string, lines []cart.LineItem) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, li := range lines {
		items = append(items, OrderItem{
			OrderID:      orderID,
			ProductID:    li.ProductID,
			ProductName:  li.Name,
			UnitPrice:    li.UnitPrice,
			Quantity:     li.Quantity,
			LineTotal:    pricing.RoundCurrency(li.LineTotal()),
			Size:         li.Size,
			ColorOptions: append([]string(nil), li.ColorOptions...),
			Notes:        li.Notes,
		})
	}
	return items
}

// stockDemand sums the quantity ordered per product. Package lines are
// expanded into their components, line quantity × component quantity.
func (s *service) stockDemand(ctx context.Context, lines []cart.LineItem) ([]string, map[string]int, error) {
	var ids []string
	qty := make(map[string]int)
	add := func(id string, n int) {
		if _, seen := qty[id]; !seen {
			ids = append(ids, id)
		}
		qty[id] += n
	}

	for _, li := range lines {
		pkg, err := s.packages.GetPackage(ctx, li.ProductID)
		switch {
		case err == nil:
			for _, it := range pkg.Items {
				add(it.ProductID, li.Quantity*it.Quantity)
			}
		case errors.Is(err, packages.ErrPackageNotFound):
			add(li.ProductID, li.Quantity)
		default:
			return nil, nil, err
		}
	}
	return ids, qty, nil
}

// decrementStock subtracts the demand of every distinct product, floored at
// zero. Products that no longer exist are skipped.
func (s *service) decrementStock(ctx context.Context, lines []cart.LineItem) error {
	ids, qty, err := s.stockDemand(ctx, lines)
	if err != nil {
		return err
	}

	for _, id := range ids {
		change, err := s.stock.DecrementStock(ctx, id, qty[id])
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if change.Clamped {
			metrics.StockClamped.Inc()
			logger.FromCtx(ctx).Warn("stock floored at zero",
				zap.String("product_id", id),
				zap.Int("stock", change.Previous),
				zap.Int("ordered", qty[id]),
			)
		}
	}
	return nil
}

// ---------- ADMIN ----------

func (s *service) ListOrders(ctx context.Context, opts ListOrdersOptions) ([]*Order, int64, error) {
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListOrders(ctx, opts)
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
	)

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(status) {
		log.Warn("rejected status change",
			zap.String("from", string(o.Status)),
			zap.String("to", string(status)),
		)
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}
	o.Status = status

	log.Info("order status updated",
		zap.String("status", string(status)),
		zap.String("by", utils.GetUserEmailFromContext(ctx)),
	)
	return o, nil
}

func (s *service) ListIncompleteOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListIncompleteOrders(ctx, s.now().Add(-IncompleteAfter))
}
