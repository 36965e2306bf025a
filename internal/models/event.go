package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a calendar entry. Date and Time are naive local strings
// ("YYYY-MM-DD" / "HH:MM"); no timezone is stored.
type Event struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title string             `bson:"title" json:"title"`
	Date  string             `bson:"date" json:"date"`
	Time  string             `bson:"time" json:"time"`
}
