// Package cart manages the per-user cart stored on the user document.
// The cart is durable state in the primary store, one cart per user.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/user"
)

var (
	ErrItemNotInCart   = errors.New("item not found in cart")
	ErrItemUnavailable = errors.New("item is currently unavailable")
	ErrBadQuantity     = errors.New("quantity cannot be negative")
)

// Line is a cart entry joined with its live menu item for display.
type Line struct {
	MenuItem *menu.Item `json:"menuItem"`
	Quantity int        `json:"quantity"`
}

type View struct {
	Items       []Line  `json:"items"`
	TotalAmount float64 `json:"totalAmount"`
}

type MenuStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*menu.Item, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*user.User, error)
	SaveCart(ctx context.Context, id primitive.ObjectID, cart user.Cart) error
}

type Service struct {
	users UserStore
	menu  MenuStore
}

func NewService(users UserStore, menuStore MenuStore) *Service {
	return &Service{users: users, menu: menuStore}
}

// view joins entries with current menu items and recomputes the total
// from current prices. Entries whose item vanished from the menu are
// dropped from the view.
func (s *Service) view(ctx context.Context, entries []user.CartEntry) (View, user.Cart, error) {
	v := View{Items: []Line{}}
	kept := user.Cart{Items: []user.CartEntry{}}
	total := decimal.Zero
	for _, e := range entries {
		it, err := s.menu.GetByID(ctx, e.MenuItem)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				continue
			}
			return View{}, user.Cart{}, err
		}
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(e.Quantity))))
		v.Items = append(v.Items, Line{MenuItem: it, Quantity: e.Quantity})
		kept.Items = append(kept.Items, e)
	}
	v.TotalAmount, _ = total.Float64()
	kept.TotalAmount = v.TotalAmount
	return v, kept, nil
}

func (s *Service) Get(ctx context.Context, userID primitive.ObjectID) (View, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return View{}, err
	}
	v, kept, err := s.view(ctx, u.Cart.Items)
	if err != nil {
		return View{}, err
	}
	if err := s.users.SaveCart(ctx, userID, kept); err != nil {
		return View{}, err
	}
	return v, nil
}

func (s *Service) Add(ctx context.Context, userID, itemID primitive.ObjectID, qty int) (View, error) {
	if qty < 1 {
		qty = 1
	}
	it, err := s.menu.GetByID(ctx, itemID)
	if err != nil {
		return View{}, err
	}
	if !it.IsAvailable {
		return View{}, ErrItemUnavailable
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return View{}, err
	}
	entries := u.Cart.Items
	found := false
	for i := range entries {
		if entries[i].MenuItem == itemID {
			entries[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, user.CartEntry{MenuItem: itemID, Quantity: qty})
	}
	return s.save(ctx, userID, entries)
}

// SetQuantity updates an entry's quantity; zero removes the entry.
func (s *Service) SetQuantity(ctx context.Context, userID, itemID primitive.ObjectID, qty int) (View, error) {
	if qty < 0 {
		return View{}, ErrBadQuantity
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return View{}, err
	}
	entries := u.Cart.Items
	idx := -1
	for i := range entries {
		if entries[i].MenuItem == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return View{}, ErrItemNotInCart
	}
	if qty == 0 {
		entries = append(entries[:idx], entries[idx+1:]...)
	} else {
		entries[idx].Quantity = qty
	}
	return s.save(ctx, userID, entries)
}

func (s *Service) Remove(ctx context.Context, userID, itemID primitive.ObjectID) (View, error) {
	return s.SetQuantity(ctx, userID, itemID, 0)
}

func (s *Service) Clear(ctx context.Context, userID primitive.ObjectID) (View, error) {
	if err := s.users.SaveCart(ctx, userID, user.Cart{Items: []user.CartEntry{}}); err != nil {
		return View{}, err
	}
	return View{Items: []Line{}}, nil
}

func (s *Service) save(ctx context.Context, userID primitive.ObjectID, entries []user.CartEntry) (View, error) {
	v, kept, err := s.view(ctx, entries)
	if err != nil {
		return View{}, err
	}
	if err := s.users.SaveCart(ctx, userID, kept); err != nil {
		return View{}, err
	}
	return v, nil
}
