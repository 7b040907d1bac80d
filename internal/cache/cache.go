// Package cache provides a small get/set cache for computed plan
// results on the HTTP path. Keys are canonical hashes of the request
// payload so identical households hit the same entry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
)

// Cache stores serialized computation results. A miss is (_, false);
// implementations never surface lookup errors, only write errors.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key returns a deterministic cache key for payload, namespaced by
// prefix. Two payloads that marshal to the same JSON share a key.
func Key(prefix string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}
