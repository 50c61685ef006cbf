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

// MongoTaskRepository is the MongoDB implementation of tracker.TaskRepository
type MongoTaskRepository struct {
	coll *mongo.Collection
}

// NewMongoTaskRepository creates a task repository over the given database
func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(tasksCollection)}
}

// FindAll returns all tasks, optionally restricted to an exact status match
func (r *MongoTaskRepository) FindAll(ctx context.Context, status *tracker.Status) ([]tracker.Task, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}
	return r.findTasks(ctx, filter, nil)
}

// FindAllSorted returns all tasks ordered by the given stored field.
// Field whitelisting happens in the service layer.
func (r *MongoTaskRepository) FindAllSorted(ctx context.Context, field string, dir shared.SortDirection) ([]tracker.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: sortValue(dir)}})
	return r.findTasks(ctx, bson.M{}, opts)
}

// SearchByName returns tasks whose name contains the substring,
// case-insensitively. The substring is quoted so regex metacharacters
// in user input match literally.
func (r *MongoTaskRepository) SearchByName(ctx context.Context, substring string) ([]tracker.Task, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(substring), Options: "i"}}
	return r.findTasks(ctx, filter, nil)
}

// FindByProjectID returns all tasks referencing the given project
func (r *MongoTaskRepository) FindByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]tracker.Task, error) {
	return r.findTasks(ctx, bson.M{"projectId": projectID}, nil)
}

// FindByID returns a task or shared.ErrNotFound
func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*tracker.Task, error) {
	var task tracker.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ExistsByName reports whether any task carries the exact name
func (r *MongoTaskRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores a new task and returns its assigned identifier
func (r *MongoTaskRepository) Insert(ctx context.Context, task *tracker.Task) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, shared.NewDomainError("ALREADY_EXISTS", "Task with this name already exists")
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Update applies the sparse patch and stamps updatedAt
func (r *MongoTaskRepository) Update(ctx context.Context, id primitive.ObjectID, patch tracker.TaskPatch) (int64, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.DueDate != nil {
		set["dueDate"] = *patch.DueDate
	}
	if patch.ProjectID != nil {
		set["projectId"] = *patch.ProjectID
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, shared.NewDomainError("ALREADY_EXISTS", "Task with this name already exists")
		}
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Delete removes the task; returns the deleted count
func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ApplyStatusChange writes a status transition. doneDate and startDate
// are only written when the change carries them, so reopening a task
// never clears its completion stamp.
func (r *MongoTaskRepository) ApplyStatusChange(ctx context.Context, id primitive.ObjectID, change tracker.StatusChange) (int64, error) {
	set := bson.M{
		"status":    change.Status,
		"updatedAt": change.UpdatedAt,
	}
	if change.DoneDate != nil {
		set["doneDate"] = *change.DoneDate
	}
	if change.StartDate != nil {
		set["startDate"] = *change.StartDate
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// AssignProject sets the task's project reference; returns the matched count
func (r *MongoTaskRepository) AssignProject(ctx context.Context, taskID, projectID primitive.ObjectID) (int64, error) {
	update := bson.M{"$set": bson.M{"projectId": projectID, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// UnlinkProject clears the project reference on every task pointing at projectID
func (r *MongoTaskRepository) UnlinkProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	update := bson.M{
		"$unset": bson.M{"projectId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateMany(ctx, bson.M{"projectId": projectID}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *MongoTaskRepository) findTasks(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]tracker.Task, error) {
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

	tasks := []tracker.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// sortValue maps a direction to the driver's 1/-1 convention
func sortValue(dir shared.SortDirection) int {
	if dir == shared.SortAsc {
		return 1
	}
	return -1
}
