package archive

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("daily archive not found")
	ErrDuplicate = errors.New("archive already exists for date")
)

type Repository interface {
	Create(ctx context.Context, a *DailyArchive) error
	GetByDate(ctx context.Context, date time.Time) (*DailyArchive, error)
}

type MongoRepo struct{ col *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("daily_archives")}
}

func (r *MongoRepo) Create(ctx context.Context, a *DailyArchive) error {
	a.Date = Day(a.Date)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepo) GetByDate(ctx context.Context, date time.Time) (*DailyArchive, error) {
	var a DailyArchive
	err := r.col.FindOne(ctx, bson.M{"date": Day(date)}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
