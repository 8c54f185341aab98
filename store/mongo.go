package store

import (
	"context"
	"fmt"

	"terrawatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores runs in the "runs" collection.
type Mongo struct {
	client *mongo.Client
	runs   *mongo.Collection
}

func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	runs := client.Database(dbName).Collection("runs")

	// Indexes
	if _, err := runs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return &Mongo{client: client, runs: runs}, nil
}

func (m *Mongo) Record(ctx context.Context, run models.Run) (models.Run, error) {
	run.ID = primitive.NewObjectID().Hex()
	if _, err := m.runs.InsertOne(ctx, &run); err != nil {
		return run, fmt.Errorf("mongo insert run: %w", err)
	}
	return run, nil
}

func (m *Mongo) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find runs: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Run
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode runs: %w", err)
	}
	return out, nil
}

func (m *Mongo) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }
