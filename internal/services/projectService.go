package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projetoso/showcase-api/internal/db"
	"github.com/projetoso/showcase-api/internal/models"
	"github.com/projetoso/showcase-api/internal/storage"
)

// ListProjects returns every project in natural storage order.
func ListProjects() ([]models.Project, error) {
	collection := db.GetCollection("projects")

	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var projects []models.Project
	if err := cursor.All(context.TODO(), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

type projectBody struct {
	Name        string   `json:"name"`
	Turma       string   `json:"turma"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	VideoURL    string   `json:"videoUrl"`
	Images      []string `json:"images"`
	ImageURLs   []string `json:"imageUrls"`
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildProjectDraft parses and validates a JSON or multipart create
// request, stores any uploaded files through store, and returns the
// assembled draft. Image order is: URL-provided images first, then one
// stored path per uploaded file. The first image becomes the cover.
// Validation runs over every file before the first byte is stored;
// persistence is left to the caller.
func buildProjectDraft(c *fiber.Ctx, store storage.Store) (models.Project, error) {
	draft := models.Project{ID: primitive.NewObjectID()}

	var imageURLs []string
	var imageFiles []*multipart.FileHeader
	var videoFile *multipart.FileHeader

	if c.Is("json") {
		var body projectBody
		if err := c.BodyParser(&body); err != nil {
			return models.Project{}, fmt.Errorf("%w: invalid request body", ErrValidation)
		}
		draft.Name = body.Name
		draft.Turma = body.Turma
		draft.Description = body.Description
		draft.Category = body.Category
		draft.VideoURL = body.VideoURL
		imageURLs = nonBlank(append(body.Images, body.ImageURLs...))
	} else {
		form, err := c.MultipartForm()
		if err != nil {
			return models.Project{}, fmt.Errorf("%w: expected JSON or multipart body", ErrValidation)
		}
		draft.Name = c.FormValue("name")
		draft.Turma = c.FormValue("turma")
		draft.Description = c.FormValue("description")
		draft.Category = c.FormValue("category")
		draft.VideoURL = c.FormValue("videoUrl")
		imageURLs = nonBlank(form.Value["imageUrls"])

		files := form.File[storage.FieldImages]
		if len(files) > storage.MaxImageFiles {
			return models.Project{}, fmt.Errorf("%w: at most %d image files per project", ErrValidation, storage.MaxImageFiles)
		}
		imageFiles = append(imageFiles, files...)
		if videos := form.File[storage.FieldVideo]; len(videos) > 0 {
			if len(videos) > 1 {
				return models.Project{}, fmt.Errorf("%w: only one video file per project", ErrValidation)
			}
			videoFile = videos[0]
		}
	}

	draft.Name = strings.TrimSpace(draft.Name)
	draft.Turma = strings.TrimSpace(draft.Turma)
	draft.Description = strings.TrimSpace(draft.Description)

	if draft.Name == "" || draft.Turma == "" || draft.Description == "" {
		return models.Project{}, fmt.Errorf("%w: name, turma and description are required", ErrValidation)
	}
	if !models.ValidCategory(draft.Category) {
		return models.Project{}, fmt.Errorf("%w: category must be completo, incompleto or ideia", ErrValidation)
	}
	if len(imageURLs)+len(imageFiles) == 0 {
		return models.Project{}, ErrNoImage
	}

	// Check every file up front so a bad one rejects the whole draft
	// with nothing stored yet.
	for _, fh := range imageFiles {
		if err := storage.CheckUpload(storage.FieldImages, fh); err != nil {
			return models.Project{}, err
		}
	}
	if videoFile != nil {
		if err := storage.CheckUpload(storage.FieldVideo, videoFile); err != nil {
			return models.Project{}, err
		}
	}

	draft.Images = append(draft.Images, imageURLs...)
	for _, fh := range imageFiles {
		path, err := store.Save(storage.FieldImages, fh)
		if err != nil {
			return models.Project{}, err
		}
		draft.Images = append(draft.Images, path)
	}
	if videoFile != nil {
		path, err := store.Save(storage.FieldVideo, videoFile)
		if err != nil {
			return models.Project{}, err
		}
		draft.VideoURL = path
	}

	draft.Image = draft.Images[0]
	return draft, nil
}

// CreateProject builds a project draft from the request and persists
// it. Nothing reaches the database when validation fails.
func CreateProject(c *fiber.Ctx) (models.Project, error) {
	draft, err := buildProjectDraft(c, storage.Uploads)
	if err != nil {
		return models.Project{}, err
	}

	collection := db.GetCollection("projects")
	if _, err := collection.InsertOne(context.TODO(), draft); err != nil {
		return models.Project{}, err
	}
	return draft, nil
}

// buildProjectPatch turns a loosely-typed request body into a $set
// document. A legacy single "image" field becomes a one-element
// "images" list, and whenever the patch carries images the cover is
// re-pointed at the first one.
func buildProjectPatch(patch map[string]interface{}) (bson.M, error) {
	if _, hasImages := patch["images"]; !hasImages {
		if img, ok := patch["image"].(string); ok && strings.TrimSpace(img) != "" {
			patch["images"] = []interface{}{img}
		}
	}

	set := bson.M{}

	for key, bsonKey := range map[string]string{
		"name":        "name",
		"turma":       "turma",
		"description": "description",
	} {
		if raw, ok := patch[key]; ok {
			s, ok := raw.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("%w: %s cannot be blank", ErrValidation, key)
			}
			set[bsonKey] = strings.TrimSpace(s)
		}
	}

	if raw, ok := patch["category"]; ok {
		s, _ := raw.(string)
		if !models.ValidCategory(s) {
			return nil, fmt.Errorf("%w: category must be completo, incompleto or ideia", ErrValidation)
		}
		set["category"] = s
	}

	if raw, ok := patch["videoUrl"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: videoUrl must be a string", ErrValidation)
		}
		set["video_url"] = s
	}

	if raw, ok := patch["images"]; ok {
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: images must be a list", ErrValidation)
		}
		images := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: images must be a list of strings", ErrValidation)
			}
			if strings.TrimSpace(s) != "" {
				images = append(images, s)
			}
		}
		if len(images) == 0 {
			return nil, ErrNoImage
		}
		set["images"] = images
		set["image"] = images[0]
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	return set, nil
}

// UpdateProject merges a partial patch into an existing project.
// Concurrent updates are last-writer-wins; there is no version field.
func UpdateProject(id string, patch map[string]interface{}) (models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: invalid project id", ErrValidation)
	}

	set, err := buildProjectPatch(patch)
	if err != nil {
		return models.Project{}, err
	}

	collection := db.GetCollection("projects")

	var project models.Project
	err = collection.FindOneAndUpdate(
		context.TODO(),
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// DeleteProject removes a project by id.
func DeleteProject(id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid project id", ErrValidation)
	}

	collection := db.GetCollection("projects")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
