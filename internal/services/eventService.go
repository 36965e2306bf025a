package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projetoso/showcase-api/internal/db"
	"github.com/projetoso/showcase-api/internal/models"
)

// Event date/time layouts. Values are stored as naive strings; the
// frontend composes and sorts them itself.
const (
	eventDateLayout = "2006-01-02"
	eventTimeLayout = "15:04"
)

// EventDraft carries the writable event fields. On update, empty
// strings mean "leave unchanged".
type EventDraft struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

func validEventDate(date string) bool {
	_, err := time.Parse(eventDateLayout, date)
	return err == nil
}

func validEventTime(t string) bool {
	_, err := time.Parse(eventTimeLayout, t)
	return err == nil
}

// ListEvents returns all events; sort order is left to the caller.
func ListEvents() ([]models.Event, error) {
	collection := db.GetCollection("events")

	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var events []models.Event
	if err := cursor.All(context.TODO(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent validates and stores a new calendar event.
func CreateEvent(draft EventDraft) (models.Event, error) {
	draft.Title = strings.TrimSpace(draft.Title)

	if draft.Title == "" || draft.Date == "" || draft.Time == "" {
		return models.Event{}, fmt.Errorf("%w: title, date and time are required", ErrValidation)
	}
	if !validEventDate(draft.Date) {
		return models.Event{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}
	if !validEventTime(draft.Time) {
		return models.Event{}, fmt.Errorf("%w: time must be in HH:MM format", ErrValidation)
	}

	event := models.Event{
		ID:    primitive.NewObjectID(),
		Title: draft.Title,
		Date:  draft.Date,
		Time:  draft.Time,
	}

	collection := db.GetCollection("events")
	if _, err := collection.InsertOne(context.TODO(), event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// UpdateEvent applies a partial edit, format-checking whatever fields
// the patch carries.
func UpdateEvent(id string, patch EventDraft) (models.Event, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: invalid event id", ErrValidation)
	}

	set := bson.M{}
	if title := strings.TrimSpace(patch.Title); title != "" {
		set["title"] = title
	}
	if patch.Date != "" {
		if !validEventDate(patch.Date) {
			return models.Event{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
		}
		set["date"] = patch.Date
	}
	if patch.Time != "" {
		if !validEventTime(patch.Time) {
			return models.Event{}, fmt.Errorf("%w: time must be in HH:MM format", ErrValidation)
		}
		set["time"] = patch.Time
	}
	if len(set) == 0 {
		return models.Event{}, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	collection := db.GetCollection("events")

	var event models.Event
	err = collection.FindOneAndUpdate(
		context.TODO(),
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// DeleteEvent removes an event by id.
func DeleteEvent(id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid event id", ErrValidation)
	}

	collection := db.GetCollection("events")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
