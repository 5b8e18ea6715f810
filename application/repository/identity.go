package repository

import (
	"sync"

	"veriface.io/entities"
	"veriface.io/infrastructure/database/connection/datastore"
	"veriface.io/infrastructure/database/repository/mongo"
)

var identityOnce = sync.Once{}

var identityRepository mongo.MongoRepository[entities.EnrolledIdentity]

func IdentityRepo() *mongo.MongoRepository[entities.EnrolledIdentity] {
	identityOnce.Do(func() {
		identityRepository = mongo.MongoRepository[entities.EnrolledIdentity]{Model: datastore.IdentityModel}
	})
	return &identityRepository
}
