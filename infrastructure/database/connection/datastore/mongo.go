package datastore

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"veriface.io/infrastructure/logger"
)

var (
	IdentityModel         *mongo.Collection
	AttendanceRecordModel *mongo.Collection
	TerminalModel         *mongo.Collection
)

var (
	client        *mongo.Client
	cancelConnect *context.CancelFunc
)

func ConnectToDatabase() {
	cancelConnect = connectMongo()
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	c, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	client = c
	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	IdentityModel = db.Collection("Identities")
	IdentityModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "active", Value: 1}},
		Options: options.Index(),
	}})

	AttendanceRecordModel = db.Collection("AttendanceRecords")
	AttendanceRecordModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "identityID", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "terminalID", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "sessionID", Value: 1}},
		Options: options.Index(),
	}})

	TerminalModel = db.Collection("Terminals")
	TerminalModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index(),
	}})

	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if client != nil {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warning("an error occured while disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
		}
	}
	if cancelConnect != nil {
		(*cancelConnect)()
	}
	logger.Info("database connections cleaned up")
}
