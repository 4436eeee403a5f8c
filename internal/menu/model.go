package menu

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed set of menu categories the canteen serves.
var Categories = []string{
	"Signature Wraps & Bites",
	"Wholesome Bowls & Greens",
	"The Brew Bar",
	"Sweet Indulgences",
	"Waffles",
	"Snacks",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Rating is one user's rating of an item. A user has at most one entry
// per item; a repeat submission replaces it (last write wins).
type Rating struct {
	User   primitive.ObjectID `bson:"user" json:"user"`
	Rating int                `bson:"rating" json:"rating"`
	Review string             `bson:"review,omitempty" json:"review,omitempty"`
	Date   time.Time          `bson:"date" json:"date"`
}

type Item struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price"`
	Category        string             `bson:"category" json:"category"`
	Image           string             `bson:"image" json:"image"`
	IsVegetarian    bool               `bson:"isVegetarian" json:"isVegetarian"`
	IsAvailable     bool               `bson:"isAvailable" json:"isAvailable"`
	PreparationTime int                `bson:"preparationTime" json:"preparationTime"` // minutes
	Ratings         []Rating           `bson:"ratings" json:"ratings"`
	// AverageRating is always recomputed from Ratings, never edited directly.
	AverageRating float64   `bson:"averageRating" json:"averageRating"`
	TotalOrders   int       `bson:"totalOrders" json:"totalOrders"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// averageOf recomputes the cached average from the full rating list.
func averageOf(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}
