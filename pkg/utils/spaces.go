package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"hireboard-api/internal/config"
	"hireboard-api/internal/logging"
	"hireboard-api/internal/logging/types"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// SpacesClient wraps the S3 client for DigitalOcean Spaces operations
type SpacesClient struct {
	client     *s3.S3
	bucketName string
	bucketURL  string
	cdnURL     string
	logger     types.Logger
}

// NewSpacesClient creates a new DigitalOcean Spaces client
func NewSpacesClient(cfg *config.Config) (*SpacesClient, error) {
	logger := logging.GetGlobalLogger()

	if cfg.DigitalOcean.Spaces.AccessKeyID == "" || cfg.DigitalOcean.Spaces.AccessKeySecret == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces credentials are required")
	}

	if cfg.DigitalOcean.Spaces.BucketName == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces bucket name is required")
	}

	endpoint := fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.DigitalOcean.Spaces.Region)

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.DigitalOcean.Spaces.AccessKeyID,
			cfg.DigitalOcean.Spaces.AccessKeySecret,
			"",
		),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(cfg.DigitalOcean.Spaces.Region),
		S3ForcePathStyle: aws.Bool(false), // Use virtual-hosted-style for DigitalOcean Spaces
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean Spaces session: %w", err)
	}

	logger.Info("DigitalOcean Spaces client initialized", map[string]interface{}{
		"bucket_name": cfg.DigitalOcean.Spaces.BucketName,
		"region":      cfg.DigitalOcean.Spaces.Region,
		"endpoint":    endpoint,
	})

	return &SpacesClient{
		client:     s3.New(sess),
		bucketName: cfg.DigitalOcean.Spaces.BucketName,
		bucketURL:  cfg.DigitalOcean.Spaces.BucketURL,
		cdnURL:     cfg.DigitalOcean.Spaces.CDNEndpoint,
		logger:     logger,
	}, nil
}

// UploadJobDocument uploads an uploaded source document to DigitalOcean
// Spaces and returns its public URL. Each upload gets a fresh object key;
// stored documents are never overwritten or deleted.
func (sc *SpacesClient) UploadJobDocument(userID, documentID string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("job-descriptions/%s/%s.docx", userID, documentID)

	sc.logger.Info("Uploading job document to DigitalOcean Spaces", map[string]interface{}{
		"user_id":    userID,
		"object_key": objectKey,
		"size_bytes": len(data),
	})

	_, err := sc.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(docxContentType),
		ACL:         aws.String("private"),
	})
	if err != nil {
		sc.logger.Error("Failed to upload job document", map[string]interface{}{
			"user_id":    userID,
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload job document: %w", err)
	}

	return sc.objectURL(objectKey), nil
}

// objectURL builds the externally visible URL for an object key, preferring
// the CDN endpoint when configured.
func (sc *SpacesClient) objectURL(objectKey string) string {
	if sc.cdnURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(sc.cdnURL, "/"), objectKey)
	}

	if sc.bucketURL != "" {
		bucketBaseURL := strings.TrimRight(sc.bucketURL, "/")
		if !strings.HasPrefix(bucketBaseURL, "https://") {
			bucketBaseURL = "https://" + bucketBaseURL
		}
		return fmt.Sprintf("%s/%s", bucketBaseURL, objectKey)
	}

	region := ""
	if sc.client.Config.Region != nil {
		region = *sc.client.Config.Region
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", sc.bucketName, region, objectKey)
}

// IsHealthy checks if the Spaces client can communicate with the service
func (sc *SpacesClient) IsHealthy() bool {
	_, err := sc.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(sc.bucketName),
	})

	healthy := err == nil
	if !healthy {
		sc.logger.Error("DigitalOcean Spaces health check failed", map[string]interface{}{
			"bucket_name": sc.bucketName,
			"error":       err.Error(),
		})
	}

	return healthy
}
