package notification

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Unread(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*Notification, error)
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type MongoRepo struct{ col *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("notifications")}
}

func (r *MongoRepo) Create(ctx context.Context, n *Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepo) Unread(ctx context.Context) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"isRead": false}, opts)
	if err != nil {
		return nil, err
	}
	var out []Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) MarkRead(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n Notification
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}}, opts).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *MongoRepo) MarkAllRead(ctx context.Context) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"isRead": false},
		bson.M{"$set": bson.M{"isRead": true}})
	return err
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
