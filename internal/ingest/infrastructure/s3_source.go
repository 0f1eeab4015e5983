package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"innsight/internal/ingest/domain"
)

// ObjectGetter sous-ensemble du client S3 utilisé par la source
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source lit le fichier de réservations depuis un bucket S3
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
}

// IsS3URL vérifie si le chemin est de la forme s3://bucket/key
func IsS3URL(p string) bool {
	return strings.HasPrefix(p, "s3://")
}

// ParseS3URL découpe s3://bucket/key
func ParseS3URL(u string) (bucket, key string, err error) {
	if !IsS3URL(u) {
		return "", "", fmt.Errorf("not an s3 url: %s", u)
	}
	rest := strings.TrimPrefix(u, "s3://")
	i := strings.IndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("s3 url must be s3://bucket/key: %s", u)
	}
	return rest[:i], rest[i+1:], nil
}

// NewS3Source crée une source S3 avec la configuration AWS par défaut
// (variables d'environnement, profil partagé, rôle de la tâche)
func NewS3Source(ctx context.Context, url string) (*S3Source, error) {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewS3SourceWithClient(s3.NewFromConfig(awsCfg), bucket, key), nil
}

// NewS3SourceWithClient crée une source S3 avec un client fourni
func NewS3SourceWithClient(client ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Name retourne l'URL de l'objet
func (s *S3Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Fetch télécharge l'objet; un objet absent renvoie ErrNoSource
func (s *S3Source) Fetch(ctx context.Context) (*domain.Document, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, domain.ErrNoSource
		}
		return nil, domain.NewUnreadableFile(s.Name(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, domain.NewUnreadableFile(s.Name(), err)
	}
	return domain.NewDocument(path.Base(s.key), data), nil
}
