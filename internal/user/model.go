package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Building   string `bson:"building,omitempty" json:"building,omitempty"`
	RoomNumber string `bson:"roomNumber,omitempty" json:"roomNumber,omitempty"`
	Landmark   string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

type Preferences struct {
	Vegetarian    bool `bson:"vegetarian" json:"vegetarian"`
	Notifications bool `bson:"notifications" json:"notifications"`
}

// CartEntry is one (menu item, quantity) pair in the user's cart.
// Quantity is always >= 1; an entry dropped to zero is removed.
type CartEntry struct {
	MenuItem primitive.ObjectID `bson:"menuItem" json:"menuItem"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	Items       []CartEntry `bson:"items" json:"items"`
	TotalAmount float64     `bson:"totalAmount" json:"totalAmount"`
}

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"` // bcrypt hash, never serialized
	Phone         string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Role          string               `bson:"role" json:"role"`
	Orders        []primitive.ObjectID `bson:"orders" json:"orders"`
	FavoriteItems []primitive.ObjectID `bson:"favoriteItems" json:"favoriteItems"`
	Address       Address              `bson:"address,omitempty" json:"address"`
	Preferences   Preferences          `bson:"preferences" json:"preferences"`
	Cart          Cart                 `bson:"cart" json:"cart"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ProfileUpdate carries the mutable profile fields. Empty strings leave
// the stored value unchanged; nil pointers leave preferences unchanged.
type ProfileUpdate struct {
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Address     *Address     `json:"address"`
	Preferences *Preferences `json:"preferences"`
}
