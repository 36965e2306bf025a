package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projetoso/showcase-api/internal/db"
	"github.com/projetoso/showcase-api/internal/models"
)

// UserUpdate carries the optional fields of a user edit. Empty strings
// mean "leave unchanged".
type UserUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// noPassword keeps the hash out of query results entirely, not just
// out of the JSON encoding.
var noPassword = bson.M{"password": 0}

// ListUsers returns all users without their password hashes
func ListUsers() ([]models.User, error) {
	collection := db.GetCollection("users")

	cursor, err := collection.Find(context.TODO(), bson.M{}, options.Find().SetProjection(noPassword))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err := cursor.All(context.TODO(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID returns a single user without the password hash
func GetUserByID(id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	collection := db.GetCollection("users")

	var user models.User
	err = collection.FindOne(context.TODO(), bson.M{"_id": objID},
		options.FindOne().SetProjection(noPassword)).Decode(&user)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// UpdateUser applies a partial edit. A new plaintext password is
// re-hashed; everything else is stored as-is after normalization.
func UpdateUser(id string, patch UserUpdate) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	set := bson.M{}
	if username := strings.TrimSpace(patch.Username); username != "" {
		set["username"] = username
	}
	if email := strings.ToLower(strings.TrimSpace(patch.Email)); email != "" {
		set["email"] = email
	}
	if patch.Password != "" {
		if len(patch.Password) < minPasswordLength {
			return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := HashPassword(patch.Password)
		if err != nil {
			return models.User{}, err
		}
		set["password"] = hash
	}
	if patch.Role != "" {
		if patch.Role != models.RoleAdmin && patch.Role != models.RoleUser {
			return models.User{}, fmt.Errorf("%w: role must be admin or user", ErrValidation)
		}
		set["role"] = patch.Role
	}
	if len(set) == 0 {
		return models.User{}, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	collection := db.GetCollection("users")

	// Keep username/email unique when they change.
	if set["username"] != nil || set["email"] != nil {
		or := []bson.M{}
		if u, ok := set["username"]; ok {
			or = append(or, bson.M{"username": u})
		}
		if e, ok := set["email"]; ok {
			or = append(or, bson.M{"email": e})
		}
		count, err := collection.CountDocuments(context.TODO(), bson.M{
			"_id": bson.M{"$ne": objID},
			"$or": or,
		})
		if err != nil {
			return models.User{}, err
		}
		if count > 0 {
			return models.User{}, ErrDuplicate
		}
	}

	var user models.User
	err = collection.FindOneAndUpdate(
		context.TODO(),
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(noPassword),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user. The acting identity may not delete itself.
func DeleteUser(id, actingID string) error {
	if id == actingID {
		return ErrSelfDeletion
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	collection := db.GetCollection("users")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
