package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")

type Query struct {
	Status Status
	// Date filters to orders created within the given local calendar day.
	Date *time.Time
}

type Stats struct {
	TotalOrders   int64   `json:"totalOrders"`
	TodayOrders   int64   `json:"todayOrders"`
	PendingOrders int64   `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodayRevenue  float64 `json:"todayRevenue"`
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error)
	List(ctx context.Context, q Query) ([]Order, error)
	LastNumber(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, o *Order) error
	CreatedBetween(ctx context.Context, from, to time.Time) ([]Order, error)
	Stats(ctx context.Context, startOfDay time.Time) (*Stats, error)
}

type MongoRepo struct{ col *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("orders")}
}

func (r *MongoRepo) Create(ctx context.Context, o *Order) error {
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// unique index on orderNumber caught a minting race
			return ErrDuplicateNumber
		}
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var o Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *MongoRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Order, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Date != nil {
		start := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, q.Date.Location())
		filter["createdAt"] = bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LastNumber returns the lexicographically greatest order number carrying
// the date prefix, or "" when no order exists for the date.
func (r *MongoRepo) LastNumber(ctx context.Context, prefix string) (string, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "orderNumber", Value: -1}}).
		SetProjection(bson.M{"orderNumber": 1})
	var doc struct {
		OrderNumber string `bson:"orderNumber"`
	}
	err := r.col.FindOne(ctx, bson.M{"orderNumber": bson.M{"$regex": "^" + prefix}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.OrderNumber, nil
}

// Update persists the mutable order fields: status, history, payment
// status and delivery stamp. Items and totalAmount are frozen at creation
// and deliberately not written here.
func (r *MongoRepo) Update(ctx context.Context, o *Order) error {
	set := bson.M{
		"status":        o.Status,
		"statusHistory": o.StatusHistory,
		"paymentStatus": o.PaymentStatus,
		"updatedAt":     o.UpdatedAt,
	}
	if o.DeliveredAt != nil {
		set["actualDeliveryTime"] = o.DeliveredAt
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": o.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) CreatedBetween(ctx context.Context, from, to time.Time) ([]Order, error) {
	cur, err := r.col.Find(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
	if err != nil {
		return nil, err
	}
	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Stats(ctx context.Context, startOfDay time.Time) (*Stats, error) {
	st := &Stats{}
	var err error
	if st.TotalOrders, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if st.TodayOrders, err = r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": startOfDay}}); err != nil {
		return nil, err
	}
	if st.PendingOrders, err = r.col.CountDocuments(ctx, bson.M{"status": StatusPending}); err != nil {
		return nil, err
	}
	if st.TotalRevenue, err = r.revenue(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if st.TodayRevenue, err = r.revenue(ctx, bson.M{"createdAt": bson.M{"$gte": startOfDay}}); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *MongoRepo) revenue(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalAmount"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// SumTotals adds order totals with decimal arithmetic so archive revenue
// does not drift under float accumulation.
func SumTotals(orders []Order) float64 {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	f, _ := sum.Float64()
	return f
}
