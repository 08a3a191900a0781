package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	invdomain "github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
)

type CheckoutOptions struct {
	TrackingPrefix       string
	DefaultPaymentMethod string
}

type PlaceOrder struct {
	DeliveryAddress string
	PaymentMethod   string
}

type Receipt struct {
	OrderID     string
	TrackingID  string
	TotalAmount decimal.Decimal
}

// Checkout turns a cart into an order. The cart's reservations already took
// the units out of stock, so lines are checked against live stock but not
// reserved again, and the emptied cart releases nothing.
type Checkout struct {
	log     *slog.Logger
	repo    Repository
	carts   Carts
	catalog Catalog
	stock   Stock
	opts    CheckoutOptions
	now     func() time.Time
}

func NewCheckout(log *slog.Logger, repo Repository, carts Carts, catalog Catalog, stock Stock, opts CheckoutOptions) *Checkout {
	if opts.TrackingPrefix == "" {
		opts.TrackingPrefix = "SKY"
	}
	if opts.DefaultPaymentMethod == "" {
		opts.DefaultPaymentMethod = "Online Payment"
	}
	return &Checkout{log: log, repo: repo, carts: carts, catalog: catalog, stock: stock, opts: opts, now: time.Now}
}

func (c *Checkout) Place(ctx context.Context, userID string, req PlaceOrder) (Receipt, error) {
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return Receipt{}, domain.ErrMissingDeliveryAddress
	}
	payment := strings.TrimSpace(req.PaymentMethod)
	if payment == "" {
		payment = c.opts.DefaultPaymentMethod
	}

	cart, err := c.carts.Current(ctx, userID)
	if err != nil {
		return Receipt{}, err
	}
	if cart.IsEmpty() {
		return Receipt{}, domain.ErrEmptyCart
	}

	lines, total, err := c.price(ctx, cart)
	if err != nil {
		return Receipt{}, err
	}

	now := c.now().UTC()
	o := domain.Order{
		ID:              c.repo.NewID(),
		UserID:          userID,
		Items:           lines,
		TotalAmount:     total,
		Status:          domain.StatusConfirmed,
		OrderDate:       &now,
		DeliveryAddress: address,
		PaymentMethod:   payment,
		TrackingID:      c.opts.TrackingPrefix + strconv.FormatInt(now.UnixMilli(), 10),
	}
	event, err := newEvent(ctx, o, domain.EventOrderPlaced, domain.NewOrderPlaced(o, now))
	if err != nil {
		return Receipt{}, err
	}
	if err := c.repo.Create(ctx, o.ID, userID, domain.EncodeOrder(o), event); err != nil {
		return Receipt{}, fmt.Errorf("create order: %w", err)
	}

	if err := c.carts.Empty(ctx, userID); err != nil {
		// The order stands; the shopper sees the old lines until the next write.
		c.log.Error("cart not emptied after checkout", "user_id", userID, "order_id", o.ID, "err", err)
	}
	c.log.Info("order placed", "user_id", userID, "order_id", o.ID, "tracking_id", o.TrackingID, "total", total.StringFixed(2))
	return Receipt{OrderID: o.ID, TrackingID: o.TrackingID, TotalAmount: total}, nil
}

// price re-reads every line from the catalog and collects all problems
// before failing.
func (c *Checkout) price(ctx context.Context, cart *cartdomain.Cart) ([]cartdomain.Line, decimal.Decimal, error) {
	ids := make([]string, 0, len(cart.Items))
	for id := range cart.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		issues domain.CheckoutError
		lines  []cartdomain.Line
		total  = decimal.Zero
	)
	for _, id := range ids {
		line := cart.Items[id]
		item, err := c.catalog.Get(ctx, id)
		if errors.Is(err, invdomain.ErrItemNotFound) {
			issues.Unavailable = append(issues.Unavailable, line.Name+" - Product not found")
			continue
		}
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("load item %s: %w", id, err)
		}
		if !item.IsActive {
			issues.Unavailable = append(issues.Unavailable, line.Name+" - Product no longer available")
			continue
		}
		if item.StockQuantity <= 0 {
			issues.OutOfStock = append(issues.OutOfStock, line.Name+" - Out of stock")
			continue
		}
		in, err := c.stock.IsInStock(ctx, id, line.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if !in {
			issues.OutOfStock = append(issues.OutOfStock,
				fmt.Sprintf("%s - Only %d available, requested %d", line.Name, item.StockQuantity, line.Quantity))
			continue
		}

		priced := cartdomain.Line{
			ItemID:   id,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
			ImageURL: item.ImageURL,
			Unit:     item.Unit,
			InStock:  true,
		}.WithQuantity(line.Quantity)
		lines = append(lines, priced)
		total = total.Add(priced.TotalPrice)
	}
	if issues.HasIssues() {
		return nil, decimal.Zero, &issues
	}
	return lines, total, nil
}
