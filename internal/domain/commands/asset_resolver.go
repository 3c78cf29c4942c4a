package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// AssetResolver uploads pending binaries and reports where each placeholder
// ended up.
type AssetResolver struct {
	settings *entities.Settings
	metrics  repositories.SaveMetricsRepository
}

// NewAssetResolver creates a new AssetResolver.
func NewAssetResolver(settings *entities.Settings, metrics repositories.SaveMetricsRepository) *AssetResolver {
	return &AssetResolver{settings: settings, metrics: metrics}
}

// Resolve creates one remote file per pending asset, in insertion order, next
// to the document under assets/. Assets are only ever created, never updated.
// The first failure aborts the whole resolution; assets already uploaded stay
// on the remote and will be uploaded again by a retry (at-least-once).
//
// A create that conflicts with an existing file holding exactly the same bytes
// counts as uploaded, which makes content-hash names idempotent.
func (it *AssetResolver) Resolve(
	ctx context.Context,
	client repositories.ContentRepository,
	repo entities.RepoRef,
	documentPath string,
	pending []entities.PendingAsset,
) ([]entities.AssetRename, error) {
	documentDir := entities.ActiveDocument{Path: documentPath}.Dir()
	renames := make([]entities.AssetRename, 0, len(pending))
	seen := make(map[string]struct{}, len(pending))

	for _, asset := range pending {
		if _, ok := seen[asset.Placeholder]; ok {
			continue
		}
		seen[asset.Placeholder] = struct{}{}

		target := entities.AssetTargetPath(documentDir, asset.Placeholder)
		_, err := client.WriteFile(ctx, repo, entities.WriteInput{
			Path:    target,
			Content: base64.StdEncoding.EncodeToString(asset.Payload),
			Message: it.settings.Messages.Asset,
			Binary:  true,
		})
		switch {
		case err == nil:
			it.metrics.AssetUploaded(len(asset.Payload))
			logger.Debugf("Uploaded asset %q (%d bytes)", target, len(asset.Payload))
		case errors.Is(err, entities.ErrConflict) && it.alreadyUploaded(ctx, client, repo, target, asset.Payload):
			logger.Debugf("Asset %q already holds the pasted bytes", target)
		default:
			return nil, fmt.Errorf("failed to upload asset %q: %w", target, err)
		}

		renames = append(renames, entities.AssetRename{From: asset.Placeholder, To: target})
	}
	return renames, nil
}

func (it *AssetResolver) alreadyUploaded(
	ctx context.Context,
	client repositories.ContentRepository,
	repo entities.RepoRef,
	target string,
	payload []byte,
) bool {
	existing, err := client.ReadFile(ctx, repo, target)
	if err != nil {
		logger.Debugf("Could not inspect existing asset %q: %v", target, err)
		return false
	}
	return entities.MatchesToken(payload, existing.Token)
}
