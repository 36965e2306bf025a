package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeleteUserSelfDeletionForbidden(t *testing.T) {
	// The guard fires on the raw id match, regardless of role or
	// whether the id exists.
	id := primitive.NewObjectID().Hex()
	assert.ErrorIs(t, DeleteUser(id, id), ErrSelfDeletion)
}

func TestDeleteUserInvalidID(t *testing.T) {
	assert.ErrorIs(t, DeleteUser("nope", "someone-else"), ErrValidation)
}

func TestGetUserByIDInvalidID(t *testing.T) {
	_, err := GetUserByID("not-hex")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserValidation(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	_, err := UpdateUser(id, UserUpdate{})
	assert.ErrorIs(t, err, ErrValidation, "empty patch")

	_, err = UpdateUser(id, UserUpdate{Password: "123"})
	assert.ErrorIs(t, err, ErrValidation, "short password")

	_, err = UpdateUser(id, UserUpdate{Role: "superuser"})
	assert.ErrorIs(t, err, ErrValidation, "unknown role")

	_, err = UpdateUser("zzz", UserUpdate{Username: "x"})
	assert.ErrorIs(t, err, ErrValidation, "bad id")
}
