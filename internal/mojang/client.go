package mojang

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SkyEye-FAST/mc-lang/pkg/log"
)

// Config holds the configuration for the Mojang API client
type Config struct {
	MetaURL      string
	ResourcesURL string
	Timeout      int // seconds
	MaxRetries   int
	RetryDelay   time.Duration
}

// Validate checks that the client configuration is usable.
func (c *Config) Validate() error {
	if c.MetaURL == "" {
		return fmt.Errorf("meta URL is required")
	}
	if c.ResourcesURL == "" {
		return fmt.Errorf("resources URL is required")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	return nil
}

// Client talks to the Mojang version metadata service and asset CDN.
// It performs network I/O only and never touches the filesystem.
// Thread-safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Mojang client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

// ResolveVersion fetches the version manifest and returns the latest
// snapshot version together with its client manifest URL.
func (c *Client) ResolveVersion(ctx context.Context) (*Version, error) {
	var manifest VersionManifest
	url := c.config.MetaURL + "/mc/game/version_manifest_v2.json"
	if err := c.getJSON(ctx, url, &manifest); err != nil {
		return nil, fmt.Errorf("failed to fetch version manifest: %w", err)
	}

	id := manifest.Latest.Snapshot
	if id == "" {
		return nil, fmt.Errorf("version manifest has no latest snapshot")
	}

	for _, entry := range manifest.Versions {
		if entry.ID == id {
			return &Version{ID: id, ManifestURL: entry.URL}, nil
		}
	}
	return nil, fmt.Errorf("version %s not listed in version manifest", id)
}

// ClientManifest fetches the client.json of a resolved version.
func (c *Client) ClientManifest(ctx context.Context, version *Version) (*ClientManifest, error) {
	var manifest ClientManifest
	if err := c.getJSON(ctx, version.ManifestURL, &manifest); err != nil {
		return nil, fmt.Errorf("failed to fetch client manifest for %s: %w", version.ID, err)
	}
	if manifest.AssetIndex.URL == "" {
		return nil, fmt.Errorf("client manifest for %s has no asset index", version.ID)
	}
	return &manifest, nil
}

// AssetIndex fetches the asset index referenced by a client manifest.
func (c *Client) AssetIndex(ctx context.Context, manifest *ClientManifest) (*AssetIndex, error) {
	var index AssetIndex
	if err := c.getJSON(ctx, manifest.AssetIndex.URL, &index); err != nil {
		return nil, fmt.Errorf("failed to fetch asset index: %w", err)
	}
	if len(index.Objects) == 0 {
		return nil, fmt.Errorf("asset index has no objects")
	}
	return &index, nil
}

// FetchObject downloads a content-addressed asset from the resource CDN
// and verifies its SHA-1 checksum, retrying on mismatch.
func (c *Client) FetchObject(ctx context.Context, obj AssetObject) ([]byte, error) {
	if len(obj.Hash) < 2 {
		return nil, fmt.Errorf("asset object has malformed hash %q", obj.Hash)
	}
	url := fmt.Sprintf("%s/%s/%s", c.config.ResourcesURL, obj.Hash[:2], obj.Hash)
	return c.getVerified(ctx, url, obj.Hash)
}

// FetchClientJar downloads the client archive of a version into memory
// and verifies its SHA-1 checksum.
func (c *Client) FetchClientJar(ctx context.Context, manifest *ClientManifest) ([]byte, error) {
	dl := manifest.Downloads.Client
	if dl.URL == "" {
		return nil, fmt.Errorf("client manifest has no client download")
	}
	log.Info("Downloading client archive (%s, %d bytes)", dl.SHA1, dl.Size)
	return c.getVerified(ctx, dl.URL, dl.SHA1)
}

// getVerified downloads url and checks the body against the expected
// SHA-1, spending the retry budget on checksum mismatches as well as
// transport errors.
func (c *Client) getVerified(ctx context.Context, url, sha1sum string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		body, err := c.get(ctx, url)
		if err != nil {
			return nil, err
		}
		if checkSHA1(body, sha1sum) {
			return body, nil
		}
		lastErr = fmt.Errorf("checksum mismatch for %s (want %s)", url, sha1sum)
		log.Warn("Checksum mismatch for %s, retrying download (%d/%d)",
			url, attempt, c.config.MaxRetries)
	}
	return nil, lastErr
}

// get performs a GET with the configured retry policy. Responses other
// than 2xx are errors.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 1 {
			log.Warn("Retrying %s in %v (%d/%d)", url, c.config.RetryDelay, attempt, c.config.MaxRetries)
			select {
			case <-time.After(c.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.getOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries, lastErr)
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request to %s failed with status %d", url, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", url, err)
	}
	return nil
}

// checkSHA1 verifies data against an expected hex SHA-1 digest.
func checkSHA1(data []byte, want string) bool {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]) == want
}
