package entities

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	NamingTimestamp   = "timestamp"
	NamingContentHash = "content-hash"

	contentHashNameLength = 16
)

// AssetNamer produces the placeholder reference for a pasted binary. The
// committed asset name is derived from the placeholder, so the namer decides
// whether a retried upload lands on the same remote path.
type AssetNamer interface {
	Placeholder(payload []byte, mediaType string) string
}

// TimestampNamer names pastes after the current time in milliseconds. Names
// are strictly increasing so two pastes within the same millisecond stay
// distinct. A retried save after a partial failure may upload the same image
// under a second name.
type TimestampNamer struct {
	now  func() time.Time
	mu   sync.Mutex
	last int64
}

// NewTimestampNamer uses time.Now when now is nil.
func NewTimestampNamer(now func() time.Time) *TimestampNamer {
	if now == nil {
		now = time.Now
	}
	return &TimestampNamer{now: now}
}

func (n *TimestampNamer) Placeholder(_ []byte, mediaType string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	return PlaceholderDir + "paste-" + strconv.FormatInt(ms, 10) + "." + ExtensionForMediaType(mediaType)
}

// ContentHashNamer names pastes after the blob hash of their payload, so the
// same image always maps to the same asset path and re-uploads are idempotent.
type ContentHashNamer struct{}

func (ContentHashNamer) Placeholder(payload []byte, mediaType string) string {
	return PlaceholderDir + "paste-" + BlobToken(payload)[:contentHashNameLength] + "." + ExtensionForMediaType(mediaType)
}

// NewAssetNamer selects a naming strategy by its configuration name.
func NewAssetNamer(strategy string) (AssetNamer, error) {
	switch strategy {
	case "", NamingTimestamp:
		return NewTimestampNamer(nil), nil
	case NamingContentHash:
		return ContentHashNamer{}, nil
	default:
		return nil, fmt.Errorf("unknown asset naming strategy %q", strategy)
	}
}
