package menu

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	if ValidCategory("Pizza") {
		t.Error("unknown category accepted")
	}
}

func TestAverageOf(t *testing.T) {
	if got := averageOf(nil); got != 0 {
		t.Errorf("empty = %v", got)
	}
	u := primitive.NewObjectID()
	ratings := []Rating{
		{User: u, Rating: 5},
		{User: primitive.NewObjectID(), Rating: 4},
		{User: primitive.NewObjectID(), Rating: 3},
	}
	if got := averageOf(ratings); got != 4 {
		t.Errorf("average = %v, want 4", got)
	}
}
