package repository

import (
	"sync"

	"veriface.io/entities"
	"veriface.io/infrastructure/database/connection/datastore"
	"veriface.io/infrastructure/database/repository/mongo"
)

var terminalOnce = sync.Once{}

var terminalRepository mongo.MongoRepository[entities.Terminal]

func TerminalRepo() *mongo.MongoRepository[entities.Terminal] {
	terminalOnce.Do(func() {
		terminalRepository = mongo.MongoRepository[entities.Terminal]{Model: datastore.TerminalModel}
	})
	return &terminalRepository
}
