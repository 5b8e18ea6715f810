package cloudflare

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/file_upload/types"
	"veriface.io/infrastructure/logger"
)

type R2SignedURLService struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

func (c *R2SignedURLService) GeneratedSignedURL(fileName string, permission types.SignedURLPermission) (*string, error) {
	if permission.Read == permission.Write {
		return nil, errors.New("permission must be either read or write")
	}
	method := http.MethodGet
	if permission.Write {
		method = http.MethodPut
	}
	return c.presign(method, fileName)
}

func (c *R2SignedURLService) CheckFileExists(fileName string) (bool, error) {
	signedURL, err := c.presign(http.MethodHead, fileName)
	if err != nil {
		return false, err
	}
	res, err := http.Head(*signedURL)
	if err != nil {
		logger.Error("error checking object existence on r2", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("r2 object head returned status %d", res.StatusCode)
	}
	return true, nil
}

func (c *R2SignedURLService) DeleteFile(fileName string) error {
	signedURL, err := c.presign(http.MethodDelete, fileName)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodDelete, *signedURL, nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Error("error deleting object on r2", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return fmt.Errorf("r2 object delete returned status %d", res.StatusCode)
	}
	return nil
}

// presign builds an AWS SigV4 presigned URL for the bucket object. R2 speaks
// the S3 protocol so the service name is always s3 and payloads stay unsigned.
func (c *R2SignedURLService) presign(httpMethod string, fileName string) (*string, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	timestamp := time.Now().UTC()
	dateStamp := timestamp.Format("20060102")
	amzDateTime := timestamp.Format("20060102T150405Z")

	canonicalURI := fmt.Sprintf("/%s/%s", os.Getenv("R2_BUCKET"), fileName)

	query := url.Values{}
	query.Set("X-Amz-Algorithm", "AWS4-HMAC-SHA256")
	query.Set("X-Amz-Credential", fmt.Sprintf("%s/%s/%s/s3/aws4_request",
		c.AccessKeyID, dateStamp, c.Region))
	query.Set("X-Amz-Date", amzDateTime)
	query.Set("X-Amz-Expires", fmt.Sprintf("%d", 300)) // url is valid for only 5 mins
	query.Set("X-Amz-SignedHeaders", "host")

	host := fmt.Sprintf("%s.r2.cloudflarestorage.com", c.AccountID)
	canonicalHeaders := fmt.Sprintf("host:%s\n", host)

	canonicalRequest := strings.Join([]string{
		httpMethod,
		canonicalURI,
		query.Encode(),
		canonicalHeaders,
		"host",
		"UNSIGNED-PAYLOAD",
	}, "\n")
	hashedCanonicalRequest := sha256.Sum256([]byte(canonicalRequest))

	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDateTime,
		fmt.Sprintf("%s/%s/s3/aws4_request", dateStamp, c.Region),
		hex.EncodeToString(hashedCanonicalRequest[:]),
	}, "\n")

	dateKey := hmacSHA256([]byte("AWS4"+c.SecretAccessKey), []byte(dateStamp))
	dateRegionKey := hmacSHA256(dateKey, []byte(c.Region))
	dateRegionServiceKey := hmacSHA256(dateRegionKey, []byte("s3"))
	signingKey := hmacSHA256(dateRegionServiceKey, []byte("aws4_request"))
	signature := hex.EncodeToString(hmacSHA256(signingKey, []byte(stringToSign)))

	query.Set("X-Amz-Signature", signature)

	return utils.GetStringPointer(fmt.Sprintf("%s%s?%s", endpoint, canonicalURI, query.Encode())), nil
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
