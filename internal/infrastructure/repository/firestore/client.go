// Package firestore stores the service collections in Cloud Firestore.
package firestore

import (
	"context"
	"strings"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const (
	collectionSignups  = "signups"
	collectionPlayers  = "players"
	collectionGames    = "games"
	collectionVotes    = "votes"
	collectionComments = "comments"
)

type ClientConfig struct {
	ProjectID       string
	DatabaseID      string
	CredentialsJSON string
	EmulatorHost    string
}

// NewClient connects to Firestore, or to the emulator when EmulatorHost is set.
func NewClient(ctx context.Context, cfg ClientConfig) (*fs.Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("firestore project id is required")
	}
	databaseID := strings.TrimSpace(cfg.DatabaseID)
	if databaseID == "" {
		databaseID = fs.DefaultDatabaseID
	}

	var opts []option.ClientOption
	switch {
	case cfg.EmulatorHost != "":
		opts = append(opts,
			option.WithEndpoint(cfg.EmulatorHost),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := fs.NewClientWithDatabase(ctx, cfg.ProjectID, databaseID, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create firestore client project=%s database=%s", cfg.ProjectID, databaseID)
	}
	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(errors.UnwrapAll(err)) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(errors.UnwrapAll(err)) == codes.AlreadyExists
}

func getOne[T any](ctx context.Context, ref *fs.DocumentRef) (T, bool, error) {
	var item T
	doc, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return item, false, nil
		}
		return item, false, errors.Wrapf(err, "get %s", ref.Path)
	}
	if err := doc.DataTo(&item); err != nil {
		return item, false, errors.Wrapf(err, "decode %s", ref.Path)
	}
	return item, true, nil
}
