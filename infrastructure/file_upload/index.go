package fileupload

import (
	"os"

	"veriface.io/infrastructure/file_upload/azure"
	"veriface.io/infrastructure/file_upload/cloudflare"
	"veriface.io/infrastructure/file_upload/types"
)

var FileUploader types.FileUploaderType

func InitialiseFileUploader() {
	if os.Getenv("STORAGE_PROVIDER") == "r2" {
		FileUploader = &cloudflare.R2SignedURLService{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			Region:          "auto",
		}
		return
	}
	FileUploader = &azure.AzureBlobSignedURLService{
		AccountName:   os.Getenv("AZURE_STORAGE_ACCOUNT_NAME"),
		AccountKey:    os.Getenv("AZURE_STORAGE_ACCOUNT_KEY"),
		ContainerName: os.Getenv("AZURE_CONTAINER_NAME"),
	}
}
