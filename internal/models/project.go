package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project categories accepted by the API.
const (
	CategoryCompleto   = "completo"
	CategoryIncompleto = "incompleto"
	CategoryIdeia      = "ideia"
)

// ValidCategory reports whether category is one of the accepted values.
func ValidCategory(category string) bool {
	switch category {
	case CategoryCompleto, CategoryIncompleto, CategoryIdeia:
		return true
	}
	return false
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Turma       string             `bson:"turma" json:"turma"`
	Description string             `bson:"description" json:"description"`
	// Ordered image references; the first entry is the cover.
	Images []string `bson:"images" json:"images"`
	// Image mirrors Images[0], kept for older clients that only know
	// about a single image field.
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	VideoURL string `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	Category string `bson:"category" json:"category"`
}
