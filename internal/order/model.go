package order

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// NormalizePaymentMethod maps case-insensitive input onto the fixed enum.
func NormalizePaymentMethod(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CASH":
		return "CASH", true
	case "UPI":
		return "UPI", true
	case "CARD":
		return "CARD", true
	}
	return "", false
}

// Item is a frozen snapshot of a line at order time. Price is the unit
// price when the order was placed; later re-pricing never touches it.
type Item struct {
	MenuItem primitive.ObjectID `bson:"menuItem" json:"menuItem"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

type StudentDetails struct {
	RollNumber string `bson:"rollNumber" json:"rollNumber"`
	Name       string `bson:"name" json:"name"`
}

type StatusEntry struct {
	Status    Status    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"orderNumber" json:"orderNumber"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Items         []Item             `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        Status             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Student       StudentDetails     `bson:"studentDetails" json:"studentDetails"`
	EstimatedAt   time.Time          `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime"`
	DeliveredAt   *time.Time         `bson:"actualDeliveryTime,omitempty" json:"actualDeliveryTime,omitempty"`
	StatusHistory []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
