package main

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/notification"
	"github.com/campuscanteen/canteen-api/internal/order"
	"github.com/campuscanteen/canteen-api/internal/user"
)

// In-memory repositories backing the handler tests. Behavior mirrors the
// mongo implementations closely enough for the routes under test.

type memUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]*user.User
	byEml map[string]primitive.ObjectID
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[primitive.ObjectID]*user.User{}, byEml: map[string]primitive.ObjectID{}}
}

func (s *memUsers) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.byEml[email]; ok {
		return user.ErrAlreadyExist
	}
	u.ID = primitive.NewObjectID()
	u.Email = email
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.Cart.Items == nil {
		u.Cart.Items = []user.CartEntry{}
	}
	cp := *u
	s.byID[u.ID] = &cp
	s.byEml[email] = u.ID
	return nil
}

func (s *memUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEml[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *memUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd user.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	if upd.Preferences != nil {
		u.Preferences = *upd.Preferences
	}
	return nil
}

func (s *memUsers) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (s *memUsers) SaveCart(ctx context.Context, id primitive.ObjectID, cart user.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Cart = cart
	return nil
}

func (s *memUsers) AppendOrder(ctx context.Context, id, orderID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Orders = append(u.Orders, orderID)
	return nil
}

func (s *memUsers) AddFavorite(ctx context.Context, id, itemID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	for _, f := range u.FavoriteItems {
		if f == itemID {
			return nil
		}
	}
	u.FavoriteItems = append(u.FavoriteItems, itemID)
	return nil
}

func (s *memUsers) RemoveFavorite(ctx context.Context, id, itemID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	kept := u.FavoriteItems[:0]
	for _, f := range u.FavoriteItems {
		if f != itemID {
			kept = append(kept, f)
		}
	}
	u.FavoriteItems = kept
	return nil
}

func (s *memUsers) CountByRole(ctx context.Context, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memMenu struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*menu.Item
}

func newMemMenu() *memMenu {
	return &memMenu{byID: map[primitive.ObjectID]*menu.Item{}}
}

func (s *memMenu) Create(ctx context.Context, it *menu.Item) error {
	if !menu.ValidCategory(it.Category) {
		return menu.ErrInvalidCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = primitive.NewObjectID()
	cp := *it
	s.byID[it.ID] = &cp
	return nil
}

func (s *memMenu) GetByID(ctx context.Context, id primitive.ObjectID) (*menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.byID[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *memMenu) List(ctx context.Context, q menu.Query) ([]menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []menu.Item
	for _, it := range s.byID {
		if q.Category != "" && it.Category != q.Category {
			continue
		}
		if q.Vegetarian != nil && it.IsVegetarian != *q.Vegetarian {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memMenu) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, it := range s.byID {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memMenu) Update(ctx context.Context, id primitive.ObjectID, upd menu.ItemUpdate) (*menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.byID[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	if upd.Category != nil && !menu.ValidCategory(*upd.Category) {
		return nil, menu.ErrInvalidCategory
	}
	if upd.Name != nil {
		it.Name = *upd.Name
	}
	if upd.Description != nil {
		it.Description = *upd.Description
	}
	if upd.Price != nil {
		it.Price = *upd.Price
	}
	if upd.Category != nil {
		it.Category = *upd.Category
	}
	if upd.Image != nil {
		it.Image = *upd.Image
	}
	if upd.IsVegetarian != nil {
		it.IsVegetarian = *upd.IsVegetarian
	}
	if upd.IsAvailable != nil {
		it.IsAvailable = *upd.IsAvailable
	}
	if upd.PreparationTime != nil {
		it.PreparationTime = *upd.PreparationTime
	}
	cp := *it
	return &cp, nil
}

func (s *memMenu) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

func (s *memMenu) IncrementOrders(ctx context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.byID[id]
	if !ok {
		return menu.ErrNotFound
	}
	it.TotalOrders += qty
	return nil
}

func (s *memMenu) SetRating(ctx context.Context, id primitive.ObjectID, r menu.Rating) (*menu.Item, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return nil, menu.ErrInvalidRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.byID[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	replaced := false
	for i := range it.Ratings {
		if it.Ratings[i].User == r.User {
			it.Ratings[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		it.Ratings = append(it.Ratings, r)
	}
	sum := 0
	for _, e := range it.Ratings {
		sum += e.Rating
	}
	it.AverageRating = float64(sum) / float64(len(it.Ratings))
	cp := *it
	return &cp, nil
}

func (s *memMenu) Popular(ctx context.Context, limit int) ([]menu.Item, error) {
	items, _ := s.List(ctx, menu.Query{})
	sort.Slice(items, func(i, j int) bool { return items[i].TotalOrders > items[j].TotalOrders })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type memOrders struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*order.Order
	seq  []primitive.ObjectID
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[primitive.ObjectID]*order.Order{}}
}

func (s *memOrders) Create(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.byID {
		if ex.OrderNumber == o.OrderNumber {
			return order.ErrDuplicateNumber
		}
	}
	o.ID = primitive.NewObjectID()
	cp := *o
	s.byID[o.ID] = &cp
	s.seq = append(s.seq, o.ID)
	return nil
}

func (s *memOrders) GetByID(ctx context.Context, id primitive.ObjectID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for _, id := range s.seq {
		if o := s.byID[id]; o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrders) List(ctx context.Context, q order.Query) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for _, id := range s.seq {
		o := s.byID[id]
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if q.Date != nil {
			start := archive.Day(*q.Date)
			if o.CreatedAt.Before(start) || !o.CreatedAt.Before(start.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrders) LastNumber(ctx context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := ""
	for _, o := range s.byID {
		if strings.HasPrefix(o.OrderNumber, prefix) && o.OrderNumber > last {
			last = o.OrderNumber
		}
	}
	return last, nil
}

func (s *memOrders) Update(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[o.ID]; !ok {
		return order.ErrNotFound
	}
	cp := *o
	s.byID[o.ID] = &cp
	return nil
}

func (s *memOrders) CreatedBetween(ctx context.Context, from, to time.Time) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for _, id := range s.seq {
		o := s.byID[id]
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrders) Stats(ctx context.Context, startOfDay time.Time) (*order.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &order.Stats{}
	for _, o := range s.byID {
		st.TotalOrders++
		st.TotalRevenue += o.TotalAmount
		if o.Status == order.StatusPending {
			st.PendingOrders++
		}
		if !o.CreatedAt.Before(startOfDay) {
			st.TodayOrders++
			st.TodayRevenue += o.TotalAmount
		}
	}
	return st, nil
}

type memNotifs struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*notification.Notification
}

func newMemNotifs() *memNotifs {
	return &memNotifs{byID: map[primitive.ObjectID]*notification.Notification{}}
}

func (s *memNotifs) Create(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = primitive.NewObjectID()
	cp := *n
	s.byID[n.ID] = &cp
	return nil
}

func (s *memNotifs) Unread(ctx context.Context) ([]notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for _, n := range s.byID {
		if !n.IsRead {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *memNotifs) MarkRead(ctx context.Context, id primitive.ObjectID) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[id]
	if !ok {
		return nil, notification.ErrNotFound
	}
	n.IsRead = true
	cp := *n
	return &cp, nil
}

func (s *memNotifs) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.byID {
		n.IsRead = true
	}
	return nil
}

func (s *memNotifs) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

type memArchives struct {
	mu     sync.Mutex
	byDate map[time.Time]*archive.DailyArchive
}

func newMemArchives() *memArchives {
	return &memArchives{byDate: map[time.Time]*archive.DailyArchive{}}
}

func (s *memArchives) Create(ctx context.Context, a *archive.DailyArchive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := archive.Day(a.Date)
	if _, ok := s.byDate[key]; ok {
		return archive.ErrDuplicate
	}
	a.ID = primitive.NewObjectID()
	s.byDate[key] = a
	return nil
}

func (s *memArchives) GetByDate(ctx context.Context, date time.Time) (*archive.DailyArchive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byDate[archive.Day(date)]
	if !ok {
		return nil, archive.ErrNotFound
	}
	return a, nil
}

// noopTx satisfies order.TxRunner; the in-memory stores have no
// transactions to speak of.
type noopTx struct{}

func (noopTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
