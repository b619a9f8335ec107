// Package archive keeps the final leaderboard of every completed tournament
// in S3.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ObjectPutter is the part of the S3 client the archiver uses
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket string
	Prefix string
	Region string
}

func DefaultConfig() Config {
	return Config{
		Prefix: "leaderboards",
		Region: "us-east-1",
	}
}

// Archiver is a freshness sink. The first snapshot of a tournament showing
// it completed is written once; later ones are ignored.
type Archiver struct {
	client ObjectPutter
	cfg    Config

	mu       sync.Mutex
	archived map[uuid.UUID]bool
}

func New(client ObjectPutter, cfg Config) *Archiver {
	return &Archiver{
		client:   client,
		cfg:      cfg,
		archived: make(map[uuid.UUID]bool),
	}
}

// NewS3 builds an archiver on the default AWS credential chain.
func NewS3(ctx context.Context, cfg Config) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return New(s3.NewFromConfig(awsCfg), cfg), nil
}

// Key is the object key of a tournament's archived leaderboard.
func (a *Archiver) Key(snap *leaderboard.Snapshot) string {
	return path.Join(a.cfg.Prefix, snap.Tournament.SeasonID.String(), snap.TournamentID.String()+".json")
}

// Publish implements freshness.Sink.
func (a *Archiver) Publish(ctx context.Context, snap *leaderboard.Snapshot) error {
	if snap.Status != models.TournamentStatusCompleted {
		return nil
	}
	a.mu.Lock()
	done := a.archived[snap.TournamentID]
	a.mu.Unlock()
	if done {
		return nil
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := a.Key(snap)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil && !alreadyExists(err) {
		return fmt.Errorf("failed to archive leaderboard (key: %s): %w", key, err)
	}

	a.mu.Lock()
	a.archived[snap.TournamentID] = true
	a.mu.Unlock()

	log.Info().
		Str("tournament_id", snap.TournamentID.String()).
		Str("bucket", a.cfg.Bucket).
		Str("key", key).
		Bool("existing", err != nil).
		Msg("archived final leaderboard")
	return nil
}

// alreadyExists reports a failed conditional write, meaning another replica
// archived the tournament first.
func alreadyExists(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}
