package archive

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusCounts is the per-status breakdown of a day's orders.
type StatusCounts struct {
	Pending   int `bson:"pending" json:"pending"`
	Preparing int `bson:"preparing" json:"preparing"`
	Ready     int `bson:"ready" json:"ready"`
	Delivered int `bson:"delivered" json:"delivered"`
	Cancelled int `bson:"cancelled" json:"cancelled"`
}

// DailyArchive is the end-of-day aggregate snapshot for one calendar
// date. At most one archive exists per date.
type DailyArchive struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Date         time.Time            `bson:"date" json:"date"`
	TotalOrders  int                  `bson:"totalOrders" json:"totalOrders"`
	TotalRevenue float64              `bson:"totalRevenue" json:"totalRevenue"`
	OrderCount   StatusCounts         `bson:"orderCount" json:"orderCount"`
	Orders       []primitive.ObjectID `bson:"orders" json:"orders"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// Day truncates t to its local calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
