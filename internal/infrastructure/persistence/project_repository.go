package persistence

import (
	"context"
	"regexp"
	"time"

	"github.com/taskboard/backend/internal/domain/shared"
	"github.com/taskboard/backend/internal/domain/tracker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProjectRepository is the MongoDB implementation of tracker.ProjectRepository
type MongoProjectRepository struct {
	coll *mongo.Collection
}

// NewMongoProjectRepository creates a project repository over the given database
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectsCollection)}
}

// FindAll returns all projects, unfiltered
func (r *MongoProjectRepository) FindAll(ctx context.Context) ([]tracker.Project, error) {
	return r.findProjects(ctx, bson.M{}, nil)
}

// FindAllSorted returns all projects ordered by the given stored field
func (r *MongoProjectRepository) FindAllSorted(ctx context.Context, field string, dir shared.SortDirection) ([]tracker.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: sortValue(dir)}})
	return r.findProjects(ctx, bson.M{}, opts)
}

// FindByID returns a project or shared.ErrNotFound
func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*tracker.Project, error) {
	var project tracker.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByNameSubstring resolves a case-insensitive substring to a single
// project. ObjectIDs embed their creation time, so sorting on _id
// ascending makes the earliest-created match win deterministically.
func (r *MongoProjectRepository) FindByNameSubstring(ctx context.Context, substring string) (*tracker.Project, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(substring), Options: "i"}}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var project tracker.Project
	err := r.coll.FindOne(ctx, filter, opts).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ExistsByName reports whether any project carries the exact name
func (r *MongoProjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByID reports whether the project exists
func (r *MongoProjectRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores a new project and returns its assigned identifier
func (r *MongoProjectRepository) Insert(ctx context.Context, project *tracker.Project) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, project)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Update applies the sparse patch and stamps updatedAt
func (r *MongoProjectRepository) Update(ctx context.Context, id primitive.ObjectID, patch tracker.ProjectPatch) (int64, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["endDate"] = *patch.EndDate
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
		}
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Delete removes the project; returns the deleted count
func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoProjectRepository) findProjects(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]tracker.Project, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []tracker.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
