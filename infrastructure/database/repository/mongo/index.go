package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultQueryTimeout = 15 * time.Second

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T, opts ...*options.InsertOneOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed, opts...)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]interface{}, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	var result T
	err := repo.Model.FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]interface{}{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindMany(filter map[string]interface{}, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	cursor, err := repo.Model.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FindManyPaginated pages on _id so deep pages stay cheap. lastID is the final
// _id of the previous page and nil on the first request.
func (repo *MongoRepository[T]) FindManyPaginated(filter map[string]interface{}, pageSize int64, lastID *string, sort int) ([]T, error) {
	if lastID != nil && *lastID != "" {
		comparator := "$gt"
		if sort < 0 {
			comparator = "$lt"
		}
		filter["_id"] = map[string]interface{}{comparator: *lastID}
	}
	opts := options.Find().
		SetLimit(pageSize).
		SetSort(bson.D{{Key: "_id", Value: sort}})
	return repo.FindMany(filter, opts)
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	return repo.Model.CountDocuments(ctx, filter)
}

func (repo *MongoRepository[T]) UpdatePartialByID(id string, payload any) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	result, err := repo.Model.UpdateByID(ctx, id, bson.M{
		"$set":         payload,
		"$currentDate": bson.M{"updatedAt": true},
	})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}
