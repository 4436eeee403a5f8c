package menu

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound        = errors.New("menu item not found")
	ErrInvalidCategory = errors.New("invalid menu category")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type Query struct {
	Category   string
	Vegetarian *bool
	Search     string
}

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Item, error)
	List(ctx context.Context, q Query) ([]Item, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id primitive.ObjectID, upd ItemUpdate) (*Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	IncrementOrders(ctx context.Context, id primitive.ObjectID, qty int) error
	SetRating(ctx context.Context, id primitive.ObjectID, r Rating) (*Item, error)
	Popular(ctx context.Context, limit int) ([]Item, error)
}

// ItemUpdate carries partial updates for an item. Nil pointers leave the
// stored value unchanged.
type ItemUpdate struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	Category        *string  `json:"category"`
	Image           *string  `json:"image"`
	IsVegetarian    *bool    `json:"isVegetarian"`
	IsAvailable     *bool    `json:"isAvailable"`
	PreparationTime *int     `json:"preparationTime"`
}

type MongoRepo struct{ col *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("menu_items")}
}

func (r *MongoRepo) Create(ctx context.Context, it *Item) error {
	if !ValidCategory(it.Category) {
		return ErrInvalidCategory
	}
	now := time.Now().UTC()
	if it.Ratings == nil {
		it.Ratings = []Rating{}
	}
	it.AverageRating = averageOf(it.Ratings)
	it.CreatedAt = now
	it.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, it)
	if err != nil {
		return err
	}
	it.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*Item, error) {
	var it Item
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Item, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Vegetarian != nil {
		filter["isVegetarian"] = *q.Vegetarian
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "averageRating", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var out []Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Categories(ctx context.Context) ([]string, error) {
	vals, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, upd ItemUpdate) (*Item, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Category != nil {
		if !ValidCategory(*upd.Category) {
			return nil, ErrInvalidCategory
		}
		set["category"] = *upd.Category
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.IsVegetarian != nil {
		set["isVegetarian"] = *upd.IsVegetarian
	}
	if upd.IsAvailable != nil {
		set["isAvailable"] = *upd.IsAvailable
	}
	if upd.PreparationTime != nil {
		set["preparationTime"] = *upd.PreparationTime
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var it Item
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// IncrementOrders bumps the popularity counter with an atomic $inc so
// concurrent checkouts of the same item never lose updates.
func (r *MongoRepo) IncrementOrders(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"totalOrders": qty},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRating applies one user's rating with last-write-wins semantics:
// an existing entry for the user is replaced in place, otherwise the
// rating is appended. The cached average is then recomputed from the
// full list.
func (r *MongoRepo) SetRating(ctx context.Context, id primitive.ObjectID, rt Rating) (*Item, error) {
	if rt.Rating < 1 || rt.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if rt.Date.IsZero() {
		rt.Date = time.Now().UTC()
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "ratings.user": rt.User},
		bson.M{"$set": bson.M{
			"ratings.$.rating": rt.Rating,
			"ratings.$.review": rt.Review,
			"ratings.$.date":   rt.Date,
		}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		push, err := r.col.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$push": bson.M{"ratings": rt}},
		)
		if err != nil {
			return nil, err
		}
		if push.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}

	it, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	avg := averageOf(it.Ratings)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"averageRating": avg, "updatedAt": time.Now().UTC()},
	}); err != nil {
		return nil, err
	}
	it.AverageRating = avg
	return it, nil
}

func (r *MongoRepo) Popular(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "totalOrders", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var out []Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
