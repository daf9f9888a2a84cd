package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmkornilov/chess-weak-engines/internal/config"
)

type GameDbClient struct {
	client         *mongo.Client
	GameCollection *mongo.Collection
}

func (r *GameDbClient) Close() error {
	return r.client.Disconnect(context.TODO())
}

// NewDbClient connects to the game result store. Callers treat the store as
// optional and skip it entirely when no address is configured.
func NewDbClient(cfg config.DatabaseConfiguration) (*GameDbClient, error) {
	clientOpts := options.Client().ApplyURI(cfg.Address)

	dbClient := &GameDbClient{}

	client, err := mongo.Connect(context.TODO(), clientOpts)
	if err != nil {
		return nil, err
	}
	dbClient.client = client

	err = client.Ping(context.TODO(), nil)
	if err != nil {
		return nil, err
	}

	dbClient.GameCollection = client.Database(cfg.DatabaseName).Collection(cfg.Collection)
	if dbClient.GameCollection == nil {
		return nil, fmt.Errorf("can't resolve collection %s", cfg.DatabaseName+"."+cfg.Collection)
	}
	return dbClient, nil
}
