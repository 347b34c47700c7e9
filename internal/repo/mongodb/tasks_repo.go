// Package mongodb stores users and tasks as documents in MongoDB.
package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d taskDoc) toDomain() task.Task {
	return task.Task{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Status:      task.Status(d.Status),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type TasksRepo struct {
	coll *mongo.Collection
	obs  observability.DBObserver
}

func NewTasksRepo(database *mongo.Database, obs observability.DBObserver) *TasksRepo {
	if obs == nil {
		obs = observability.NopDB()
	}
	return &TasksRepo{coll: database.Collection("tasks"), obs: obs}
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	// mongo keeps millisecond precision; truncate so the returned value
	// matches what a later read sees
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.obs.ObserveDB("tasks.create", func() error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return task.Task{}, err
	}

	return doc.toDomain(), nil
}

func (r *TasksRepo) List(ctx context.Context, ownerID string, filter task.ListFilter) ([]task.Task, error) {
	query := bson.M{"user_id": ownerID}

	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	if filter.Search != nil && *filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	output := make([]task.Task, 0)

	err := r.obs.ObserveDB("tasks.list", func() error {
		cur, err := r.coll.Find(ctx, query, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var d taskDoc
			if err := cur.Decode(&d); err != nil {
				return err
			}
			output = append(output, d.toDomain())
		}
		return cur.Err()
	})

	if err != nil {
		return nil, err
	}
	return output, nil
}

func (r *TasksRepo) Get(ctx context.Context, id, ownerID string) (task.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return task.Task{}, task.ErrNotFound
	}

	var d taskDoc
	err = r.obs.ObserveDB("tasks.get", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": ownerID}).Decode(&d)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return d.toDomain(), nil
}

func (r *TasksRepo) Update(ctx context.Context, id, ownerID string, patch task.Patch) (task.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return task.Task{}, task.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d taskDoc
	err = r.obs.ObserveDB("tasks.update", func() error {
		return r.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": oid, "user_id": ownerID},
			bson.M{"$set": set},
			opts,
		).Decode(&d)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return d.toDomain(), nil
}

func (r *TasksRepo) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return task.ErrNotFound
	}

	return r.obs.ObserveDB("tasks.delete", func() error {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": ownerID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return task.ErrNotFound
		}
		return nil
	})
}
