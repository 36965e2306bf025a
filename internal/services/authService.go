package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/projetoso/showcase-api/internal/db"
	"github.com/projetoso/showcase-api/internal/models"
)

const (
	// Tokens stay valid for a week; there is no server-side revocation.
	tokenValidity = 7 * 24 * time.Hour

	minPasswordLength = 6
)

// jwtSecret is read per call so that godotenv has a chance to populate
// the environment before the first token is signed.
func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a JWT token carrying user ID, username and role
func GenerateJWT(userID, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(tokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyJWT parses a token and returns its claims. Expired, tampered
// or otherwise malformed tokens fail with ErrInvalidToken.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func validateCredentials(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

func createUser(username, email, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateCredentials(username, email, password); err != nil {
		return models.User{}, err
	}

	collection := db.GetCollection("users")

	// Username is matched case-sensitively, email case-insensitively
	// (emails are stored lowercased).
	count, err := collection.CountDocuments(context.TODO(), bson.M{
		"$or": []bson.M{{"username": username}, {"email": email}},
	})
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrDuplicate
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}
	_, err = collection.InsertOne(context.TODO(), user)
	return user, err
}

// RegisterUser registers a new user with the default "user" role
func RegisterUser(username, email, password string) (models.User, error) {
	return createUser(username, email, password, models.RoleUser)
}

// CreateAdmin bootstraps the first admin account. It is refused as
// soon as any admin exists.
func CreateAdmin(username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	// Bad payloads stay 400s, same as register, and skip the count.
	if err := validateCredentials(username, email, password); err != nil {
		return models.User{}, err
	}

	collection := db.GetCollection("users")

	count, err := collection.CountDocuments(context.TODO(), bson.M{"role": models.RoleAdmin})
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrAdminExists
	}

	return createUser(username, email, password, models.RoleAdmin)
}

// LoginUser authenticates by username or email and returns a JWT plus
// the matching user record.
func LoginUser(identifier, password string) (string, models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", models.User{}, ErrInvalidCredentials
	}

	collection := db.GetCollection("users")

	var user models.User
	err := collection.FindOne(context.TODO(), bson.M{
		"$or": []bson.M{
			{"username": identifier},
			{"email": strings.ToLower(identifier)},
		},
	}).Decode(&user)
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.Password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return "", models.User{}, err
	}

	user.Password = ""
	return token, user, nil
}
