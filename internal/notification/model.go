package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeNewOrder       = "NEW_ORDER"
	TypeOrderUpdated   = "ORDER_UPDATED"
	TypeOrderCancelled = "ORDER_CANCELLED"
)

// RetentionSeconds drives the TTL index on createdAt; notifications
// expire after 7 days.
const RetentionSeconds = 7 * 24 * 60 * 60

type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type    string             `bson:"type" json:"type"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`
	Order   primitive.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	// User is the addressee for order-update notifications; zero for
	// admin-facing ones.
	User      primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
