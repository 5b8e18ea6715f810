package startup

import (
	"veriface.io/infrastructure/biometric/detector"
	"veriface.io/infrastructure/biometric/embedding"
	"veriface.io/infrastructure/database"
	"veriface.io/infrastructure/database/connection/datastore"
	fileupload "veriface.io/infrastructure/file_upload"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/messaging/sms"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	logger.RequestMetricMonitor.Init()
	fileupload.InitialiseFileUploader()
	detector.InitialiseDetectionService()
	embedding.InitialiseEmbeddingService()
	sms.InitSMSService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
