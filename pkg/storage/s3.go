package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"
)

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// Prefix is prepended to every object key, e.g. "photos/".
	Prefix string
}

type s3Storage struct {
	client     *s3.S3
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
	bucketName string
	prefix     string
	log        *logrus.Logger
}

func NewS3(cfg S3Config, log *logrus.Logger) (IStorage, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("s3 bucket name is not set")
	}

	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		client:     s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
		bucketName: cfg.BucketName,
		prefix:     cfg.Prefix,
		log:        log,
	}, nil
}

func (s *s3Storage) key(name string) string {
	return s.prefix + name
}

func (s *s3Storage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{
		"file":     name,
		"location": out.Location,
	}).Debug("Uploaded photo")
	return out.Location, nil
}

func (s *s3Storage) Read(ctx context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	buf := aws.NewWriteAtBuffer(nil)
	_, err := s.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

func (s *s3Storage) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key(name)),
	})
	return err
}

func newSession(cfg S3Config) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return sess, nil
}
