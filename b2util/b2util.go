package b2util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/refill-spot/site/cache"
	"github.com/refill-spot/site/config"
)

var tokenCache *cache.Cache[string]

// Init initializes the B2 token cache. Call during application startup;
// a failure here should abort startup.
func Init() error {
	var err error
	tokenCache, err = cache.New[string](func(value string) int64 {
		return int64(len(value))
	}, "B2 Token Cache")
	return err
}

// GetDownloadTokenForPrefixCached returns a cached B2 download authorization
// token for a store image directory prefix (e.g., "22/").
func GetDownloadTokenForPrefixCached(prefix string) (string, error) {
	if token, found := tokenCache.Get(prefix); found {
		return token, nil
	}
	return refreshToken(prefix)
}

// ForceRefreshToken fetches a fresh token for a prefix, bypassing the cache.
func ForceRefreshToken(prefix string) (string, error) {
	return refreshToken(prefix)
}

func refreshToken(prefix string) (string, error) {
	token, err := getDownloadTokenForPrefix(prefix)
	if err != nil {
		return "", err
	}
	// Cache for less than the token's real lifetime so we refresh before
	// B2 starts rejecting it.
	ttl := time.Duration(config.B2DownloadTokenExpiry-600) * time.Second
	tokenCache.SetWithTTL(prefix, token, int64(len(token)), ttl)
	return token, nil
}

// GetCacheStats returns cache statistics for admin monitoring.
func GetCacheStats() map[string]interface{} {
	stats := tokenCache.Stats()
	stats["b2_token_ttl_seconds"] = config.B2DownloadTokenExpiry
	stats["b2_cache_ttl_seconds"] = config.B2DownloadTokenExpiry - 600
	return stats
}

// ClearCache clears all cached tokens.
func ClearCache() {
	tokenCache.Clear()
}

func getDownloadTokenForPrefix(prefix string) (string, error) {
	accountID := config.B2MasterKeyID
	keyID := config.B2KeyID
	appKey := config.B2AppKey
	bucketID := config.B2BucketID
	if accountID == "" || appKey == "" || keyID == "" || bucketID == "" {
		return "", fmt.Errorf("B2 credentials not set")
	}
	req, _ := http.NewRequest("GET", config.B2AuthEndpoint, nil)
	req.SetBasicAuth(keyID, appKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("B2 auth error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("B2 auth failed: %s", resp.Status)
	}
	var authResp struct {
		APIURL    string `json:"apiUrl"`
		AuthToken string `json:"authorizationToken"`
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", fmt.Errorf("B2 auth decode error: %w", err)
	}
	apiURL := authResp.APIURL + config.B2DownloadAuthEndpoint
	body, _ := json.Marshal(map[string]interface{}{
		"bucketId":               bucketID,
		"fileNamePrefix":         prefix,
		"validDurationInSeconds": int64(config.B2DownloadTokenExpiry),
	})
	req2, _ := http.NewRequest("POST", apiURL, bytes.NewReader(body))
	req2.Header.Set("Authorization", authResp.AuthToken)
	req2.Header.Set("Content-Type", "application/json")
	resp2, err := http.DefaultClient.Do(req2)
	if err != nil {
		return "", fmt.Errorf("B2 get_download_authorization error: %w", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		return "", fmt.Errorf("B2 get_download_authorization failed: %s", resp2.Status)
	}
	var tokenResp struct {
		AuthorizationToken string `json:"authorizationToken"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("B2 token decode error: %w", err)
	}
	return tokenResp.AuthorizationToken, nil
}
