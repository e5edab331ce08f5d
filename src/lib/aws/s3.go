package aws

import (
	"bookit/src/lib"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func mediaBucket() string {
	return os.Getenv("S3_MEDIA_BUCKET")
}

// S3ObjectURL is the public address of an object in the media bucket.
func S3ObjectURL(key string) string {
	bucket := mediaBucket()
	region := os.Getenv("AWS_REGION")
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

func S3UploadMedia(key string, body io.Reader, contentType string) error {
	client := lib.AWSGetS3Client()
	_, err := client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(mediaBucket()),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return err
	}
	err = s3.NewObjectExistsWaiter(client).Wait(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(mediaBucket()),
		Key:    aws.String(key),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", key, err.Error())
		return err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, mediaBucket())
	return nil
}

// S3RenameMedia copies an object to a new key and removes the old one. S3
// has no native rename.
func S3RenameMedia(oldKey, newKey string) error {
	client := lib.AWSGetS3Client()
	bucket := mediaBucket()
	_, err := client.CopyObject(context.Background(), &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", bucket, oldKey)),
		Key:        aws.String(newKey),
	})
	if err != nil {
		log.Printf("Could not copy object %s to %s: %s\n", oldKey, newKey, err.Error())
		return err
	}
	return S3DeleteMedia(oldKey)
}

func S3DeleteMedia(key string) error {
	client := lib.AWSGetS3Client()
	_, err := client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(mediaBucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		log.Printf("Could not delete object %s: %s\n", key, err.Error())
		return err
	}
	return nil
}
