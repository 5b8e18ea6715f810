package connection

import (
	"veriface.io/infrastructure/database/connection/cache"
	"veriface.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
