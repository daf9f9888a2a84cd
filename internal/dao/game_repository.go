package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmkornilov/chess-weak-engines/internal/db"
)

// GameRecord is one finished arena game as stored in the result collection.
type GameRecord struct {
	White  string             `bson:"white" json:"white"`
	Black  string             `bson:"black" json:"black"`
	Result string             `bson:"result" json:"result"`
	Method string             `bson:"method" json:"method"`
	Plies  int                `bson:"plies" json:"plies"`
	PGN    string             `bson:"pgn,omitempty" json:"pgn,omitempty"`
	Date   primitive.DateTime `bson:"date" json:"date"`
}

type GameRepository interface {
	InsertGame(record GameRecord) error

	GetLastGameFor(engineName string) (GameRecord, error)

	GetGamesBetweenDates(startTime primitive.DateTime, endTime primitive.DateTime) ([]GameRecord, error)
}

type gameRepository struct {
	dbClient *db.GameDbClient
}

func NewGameRepository(dbClient *db.GameDbClient) GameRepository {
	return &gameRepository{dbClient}
}

func (g *gameRepository) InsertGame(record GameRecord) error {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	_, err := g.dbClient.GameCollection.InsertOne(ctx, record)
	return err
}

func (g *gameRepository) GetLastGameFor(engineName string) (GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	opts := options.FindOne()
	opts.SetSort(bson.D{{Key: "date", Value: -1}})

	filter := bson.D{
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "white", Value: engineName}},
			bson.D{{Key: "black", Value: engineName}},
		}},
	}
	cur := g.dbClient.GameCollection.FindOne(ctx, filter, opts)
	var record GameRecord
	if err := cur.Decode(&record); err != nil {
		return GameRecord{}, err
	}
	return record, nil
}

func (g *gameRepository) GetGamesBetweenDates(startTime primitive.DateTime, endTime primitive.DateTime) ([]GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	filter := bson.D{
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: startTime},
			{Key: "$lte", Value: endTime},
		}},
	}

	cur, err := g.dbClient.GameCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var records []GameRecord
	if err = cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
