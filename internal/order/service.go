package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/notification"
)

var (
	ErrEmptyOrder      = errors.New("no items in order")
	ErrMissingStudent  = errors.New("student details are required")
	ErrItemUnavailable = errors.New("item is currently unavailable")
	ErrInvalidPayment  = errors.New("invalid payment method")
	ErrForbidden       = errors.New("not authorized for this order")
)

// MenuStore is the slice of the menu repository the workflow needs.
type MenuStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*menu.Item, error)
	IncrementOrders(ctx context.Context, id primitive.ObjectID, qty int) error
}

// UserStore appends the order reference to the owner's order list.
type UserStore interface {
	AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
}

type Notifier interface {
	Create(ctx context.Context, n *notification.Notification) error
}

// TxRunner executes fn as one all-or-nothing unit against the store.
// The ctx passed to fn carries the transaction; repositories pick it up
// through their normal ctx parameter.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PlaceItem struct {
	MenuItem string `json:"menuItem"`
	Quantity int    `json:"quantity"`
}

type PlaceRequest struct {
	Items         []PlaceItem    `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
	Student       StudentDetails `json:"studentDetails"`
}

type Service struct {
	orders   Repository
	menu     MenuStore
	users    UserStore
	notifs   Notifier
	tx       TxRunner
	prepTime time.Duration
	now      func() time.Time
	// onCreated is an optional hook for metrics.
	onCreated  func()
	onConflict func()
}

func NewService(orders Repository, menuStore MenuStore, users UserStore, notifs Notifier, tx TxRunner, prepTime time.Duration) *Service {
	return &Service{
		orders:   orders,
		menu:     menuStore,
		users:    users,
		notifs:   notifs,
		tx:       tx,
		prepTime: prepTime,
		now:      time.Now,
	}
}

// WithClock overrides the service clock; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithHooks wires metric callbacks for order creation and number conflicts.
func (s *Service) WithHooks(onCreated, onConflict func()) *Service {
	s.onCreated = onCreated
	s.onConflict = onConflict
	return s
}

// Place runs the order workflow: validate every line against the live
// menu, snapshot prices, compute the total, mint an order number and
// persist order, popularity counters, user order list and admin
// notification as one transaction. A minting race surfaces as a
// duplicate-key conflict and is retried once with a fresh number.
func (s *Service) Place(ctx context.Context, userID primitive.ObjectID, req PlaceRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if strings.TrimSpace(req.Student.RollNumber) == "" || strings.TrimSpace(req.Student.Name) == "" {
		return nil, ErrMissingStudent
	}
	method, ok := NormalizePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, ErrInvalidPayment
	}

	// Validate lines and freeze price snapshots before any write happens.
	total := decimal.Zero
	lines := make([]Item, 0, len(req.Items))
	for _, in := range req.Items {
		itemID, err := primitive.ObjectIDFromHex(in.MenuItem)
		if err != nil {
			return nil, fmt.Errorf("%w: bad menu item id %q", menu.ErrNotFound, in.MenuItem)
		}
		it, err := s.menu.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if !it.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, it.Name)
		}
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		price := decimal.NewFromFloat(it.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		lines = append(lines, Item{
			MenuItem: it.ID,
			Name:     it.Name,
			Quantity: qty,
			Price:    it.Price,
		})
	}
	totalAmount, _ := total.Float64()

	placed, err := s.commit(ctx, userID, method, req.Student, lines, totalAmount)
	if errors.Is(err, ErrDuplicateNumber) {
		// Lost the minting race to a concurrent checkout; one retry with
		// a freshly minted number before surfacing the conflict.
		if s.onConflict != nil {
			s.onConflict()
		}
		log.Printf("[order] duplicate order number, retrying once")
		placed, err = s.commit(ctx, userID, method, req.Student, lines, totalAmount)
	}
	if err != nil {
		return nil, err
	}
	if s.onCreated != nil {
		s.onCreated()
	}
	return placed, nil
}

func (s *Service) commit(ctx context.Context, userID primitive.ObjectID, method string, student StudentDetails, lines []Item, totalAmount float64) (*Order, error) {
	now := s.now()
	var placed *Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		last, err := s.orders.LastNumber(ctx, NumberPrefix(now))
		if err != nil {
			return err
		}
		number, err := NextNumber(last, now)
		if err != nil {
			return err
		}

		o := &Order{
			OrderNumber:   number,
			User:          userID,
			Items:         lines,
			TotalAmount:   totalAmount,
			Status:        StatusPending,
			PaymentStatus: PaymentPending,
			PaymentMethod: method,
			Student:       student,
			EstimatedAt:   now.Add(s.prepTime),
			StatusHistory: []StatusEntry{{Status: StatusPending, Timestamp: now}},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}
		for _, ln := range lines {
			if err := s.menu.IncrementOrders(ctx, ln.MenuItem, ln.Quantity); err != nil {
				return err
			}
		}
		if err := s.users.AppendOrder(ctx, userID, o.ID); err != nil {
			return err
		}
		if err := s.notifs.Create(ctx, &notification.Notification{
			Type:      notification.TypeNewOrder,
			Title:     "New Order Received",
			Message:   fmt.Sprintf("New order #%s from %s", o.OrderNumber, student.Name),
			Order:     o.ID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// UpdateStatus applies a status transition on behalf of actor. Admins may
// drive any legal transition; the owner is limited to cancelling while
// the order is still Pending or Preparing.
func (s *Service) UpdateStatus(ctx context.Context, actorID primitive.ObjectID, admin bool, orderID primitive.ObjectID, next Status) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	owner := o.User == actorID
	if !admin {
		if !owner {
			return nil, ErrForbidden
		}
		if next != StatusCancelled {
			return nil, ErrForbidden
		}
	}
	now := s.now()
	if err := Transition(o, next, now); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	ntype := notification.TypeOrderUpdated
	if next == StatusCancelled {
		ntype = notification.TypeOrderCancelled
	}
	if err := s.notifs.Create(ctx, &notification.Notification{
		Type:      ntype,
		Title:     "Order Status Updated",
		Message:   fmt.Sprintf("Your order #%s status has been updated to %s", o.OrderNumber, next),
		Order:     o.ID,
		User:      o.User,
		CreatedAt: now,
	}); err != nil {
		log.Printf("[order] status notification failed: %v", err)
	}
	return o, nil
}

// Cancel is the single owner-initiated transition.
func (s *Service) Cancel(ctx context.Context, actorID primitive.ObjectID, admin bool, orderID primitive.ObjectID) (*Order, error) {
	return s.UpdateStatus(ctx, actorID, admin, orderID, StatusCancelled)
}

// ForceCancel cancels without an actor check; used by the day-end archive
// job to clear orders still Pending at midnight.
func (s *Service) ForceCancel(ctx context.Context, orderID primitive.ObjectID) error {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	now := s.now()
	if err := Transition(o, StatusCancelled, now); err != nil {
		return err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	return s.notifs.Create(ctx, &notification.Notification{
		Type:      notification.TypeOrderCancelled,
		Title:     "Order Cancelled",
		Message:   fmt.Sprintf("Order #%s was not acknowledged today and has been cancelled", o.OrderNumber),
		Order:     o.ID,
		User:      o.User,
		CreatedAt: now,
	})
}

// Get returns the order when actor is the owner or an admin.
func (s *Service) Get(ctx context.Context, actorID primitive.ObjectID, admin bool, orderID primitive.ObjectID) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && o.User != actorID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
