// Package blobstore copies recipe images into an S3 bucket
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"

	"recipescraper/internal/adapters/fetch"
	"recipescraper/internal/platform/config"
	perr "recipescraper/internal/platform/errors"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	defaultRegion = "us-east-1"
	defaultPrefix = "uploads/scraper"
	defaultExt    = "jpg"
)

// allowedExt are the extensions kept from an image URL path
var allowedExt = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true, "gif": true, "svg": true}

// Putter is the slice of the S3 API the store uses
type Putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Downloader fetches image bytes
type Downloader interface {
	Image(ctx context.Context, url string) (fetch.Result, error)
}

// Options configures the Store
type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Prefix          string
}

// OptionsFrom reads the AWS_* keys from the unprefixed env
func OptionsFrom(cfg config.Conf) Options {
	return Options{
		AccessKeyID:     cfg.MayString("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: cfg.MayString("AWS_SECRET_ACCESS_KEY", ""),
		Region:          cfg.MayString("AWS_REGION", defaultRegion),
		Bucket:          cfg.MayString("AWS_BUCKET_NAME", ""),
		Prefix:          cfg.MayString("SCRAPER_UPLOAD_PREFIX", defaultPrefix),
	}
}

func (o Options) complete() bool {
	return o.AccessKeyID != "" && o.SecretAccessKey != "" && o.Bucket != ""
}

// Object is an uploaded image
type Object struct {
	URL string
	Key string
}

// Store uploads images, a Store without credentials or bucket is disabled
type Store struct {
	put     Putter
	dl      Downloader
	opts    Options
	log     logger.Logger
	metrics *metrics.Registry
	newKey  func() (uuid.UUID, error)
}

// New builds an S3 backed Store, incomplete options give a disabled Store
func New(ctx context.Context, o Options, dl Downloader, m *metrics.Registry) (*Store, error) {
	o = withDefaults(o)
	s := &Store{dl: dl, opts: o, log: *logger.Named("blobstore"), metrics: m, newKey: uuid.NewV7}
	if !o.complete() {
		s.log.Warn().Msg("object storage not configured, images keep their source URL")
		return s, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "load aws config")
	}
	s.put = s3.NewFromConfig(awsCfg)
	return s, nil
}

// NewWith builds a Store on an existing Putter
func NewWith(put Putter, dl Downloader, o Options, m *metrics.Registry) *Store {
	return &Store{put: put, dl: dl, opts: withDefaults(o), log: *logger.Named("blobstore"), metrics: m, newKey: uuid.NewV7}
}

func withDefaults(o Options) Options {
	if o.Region == "" {
		o.Region = defaultRegion
	}
	o.Prefix = strings.Trim(o.Prefix, "/")
	if o.Prefix == "" {
		o.Prefix = defaultPrefix
	}
	return o
}

// Enabled reports whether uploads will be attempted
func (s *Store) Enabled() bool { return s != nil && s.put != nil && s.opts.Bucket != "" }

// Upload downloads imageURL and stores it under a fresh key
func (s *Store) Upload(ctx context.Context, imageURL string) (Object, error) {
	if !s.Enabled() {
		return Object{}, perr.Unavailablef("object storage not configured")
	}
	obj, err := s.upload(ctx, imageURL)
	s.metrics.Upload(err)
	if err != nil {
		s.log.Warn().Err(err).Str("image", imageURL).Msg("image upload failed")
		return Object{}, err
	}
	s.log.Info().Str("key", obj.Key).Msg("image uploaded")
	return obj, nil
}

func (s *Store) upload(ctx context.Context, imageURL string) (Object, error) {
	if strings.TrimSpace(imageURL) == "" {
		return Object{}, perr.InvalidArgf("image url is empty")
	}
	res, err := s.dl.Image(ctx, imageURL)
	if err != nil {
		return Object{}, err
	}
	if len(res.Body) == 0 {
		return Object{}, perr.Upstreamf("image %s is empty", imageURL)
	}

	ctype := ContentType(res.ContentType, res.Body)
	if !strings.HasPrefix(ctype, "image/") {
		return Object{}, perr.Upstreamf("%s is not an image (%s)", imageURL, ctype)
	}

	id, err := s.newKey()
	if err != nil {
		return Object{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "object key")
	}
	key := fmt.Sprintf("%s/%s.%s", s.opts.Prefix, id.String(), Extension(imageURL, ctype))

	_, err = s.put.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(res.Body),
		ContentType: aws.String(ctype),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return Object{}, perr.FromTransportf(err, "put object %s", key)
	}
	return Object{URL: s.PublicURL(key), Key: key}, nil
}

// PublicURL is the virtual-hosted style URL of key
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}

// ContentType prefers a specific image header and falls back to sniffing the bytes
func ContentType(header string, body []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	mt := mimetype.Detect(body).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

// Extension picks the file extension for an upload
// An allowed extension on the URL path wins, then the content type, then jpg
func Extension(imageURL, contentType string) string {
	if u, err := url.Parse(imageURL); err == nil {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
		if allowedExt[ext] {
			return ext
		}
	}
	if m := mimetype.Lookup(contentType); m != nil {
		ext := strings.TrimPrefix(m.Extension(), ".")
		if ext == "jpe" {
			ext = "jpg"
		}
		if allowedExt[ext] {
			return ext
		}
	}
	return defaultExt
}
