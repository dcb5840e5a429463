package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

// Options configures the MinIO connection and its two buckets.
type Options struct {
	Endpoint       string
	Region         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	EvidenceBucket string
	ReportBucket   string
}

// Store serves evidence folders from one bucket and archives rendered
// reports in another.
type Store struct {
	client         *minio.Client
	evidenceBucket string
	reportBucket   string
	region         string
	extractor      evidence.Extractor
}

var _ evidence.FileShareFetcher = (*Store)(nil)

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, opts Options, extractor evidence.Extractor) (*Store, error) {
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:         cli,
		evidenceBucket: opts.EvidenceBucket,
		reportBucket:   opts.ReportBucket,
		region:         opts.Region,
		extractor:      extractor,
	}
	for _, b := range []string{opts.EvidenceBucket, opts.ReportBucket} {
		if err := s.ensureBucket(ctx, b); err != nil {
			return nil, fmt.Errorf("%w: bucket %s: %v", evidence.ErrSourceUnavailable, b, err)
		}
	}
	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region})
	}
	return nil
}

// FetchFolder downloads every PDF and DOCX under folder in the evidence
// bucket and returns their text keyed by base file name. Listing failures
// abort the fetch; a single unreadable object becomes an inline error text.
func (s *Store) FetchFolder(ctx context.Context, folder string) (map[string]string, error) {
	out := map[string]string{}
	objects := s.client.ListObjects(ctx, s.evidenceBucket, minio.ListObjectsOptions{
		Prefix:    folderPrefix(folder),
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", evidence.ErrSourceUnavailable, folder, obj.Err)
		}
		if !evidence.IsSupported(obj.Key) {
			continue
		}
		name := path.Base(obj.Key)
		data, err := s.read(ctx, obj.Key)
		if err != nil {
			out[name] = fmt.Sprintf("Error downloading %s: %v", obj.Key, err)
			continue
		}
		out[name] = s.extractor.Extract(name, data)
	}
	return out, nil
}

func (s *Store) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.evidenceBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// PutReport implementasi ReportArchive
func (s *Store) PutReport(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.reportBucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	// URL publik (jika bucket public), kalau private harus generate presigned URL
	return objectURL(s.client.EndpointURL().Host, s.reportBucket, key), nil
}

func objectURL(host, bucket, key string) string {
	return fmt.Sprintf("http://%s/%s/%s", host, bucket, key)
}

// folderPrefix turns "policies" or "/policies/" into "policies/"; empty
// means the whole bucket.
func folderPrefix(folder string) string {
	folder = path.Clean("/" + folder)
	if folder == "/" {
		return ""
	}
	return folder[1:] + "/"
}
