package entities

import "github.com/go-git/go-git/v5/plumbing"

// BlobToken computes the concurrency token the remote store assigns to content:
// the Git blob object id.
func BlobToken(content []byte) string {
	return plumbing.ComputeHash(plumbing.BlobObject, content).String()
}

// MatchesToken reports whether content is exactly what token was computed from.
func MatchesToken(content []byte, token string) bool {
	return token != "" && BlobToken(content) == token
}
