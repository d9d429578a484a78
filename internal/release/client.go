package release

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	domain "cursorup/internal/domain/release"
	"cursorup/internal/logger"
)

var (
	// ErrNoMatchingAsset is returned when the latest release carries no
	// asset for the requested product and architecture.
	ErrNoMatchingAsset = errors.New("no matching asset in latest release")
	// errBadHTTPStatus is returned on non-200 responses.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// maxMetadataSize bounds the release metadata response body.
const maxMetadataSize = 1 << 20

// Latest describes the newest published release.
type Latest struct {
	// Version is the release version parsed from the tag.
	Version *semver.Version
	// Asset is the downloadable artifact matching the local platform.
	Asset domain.Asset
}

// Client queries a release source for latest-release metadata.
// It performs a single GET and has no local side effects.
type Client struct {
	endpoint   string
	product    string
	arch       string
	httpClient *http.Client
}

// NewClient builds a client for the provided latest-release endpoint.
// Assets are matched against the given product name and arch token.
func NewClient(endpoint, product, arch string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		product:  product,
		arch:     arch,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// latestResponse mirrors the relevant parts of GitHub-style release metadata.
type latestResponse struct {
	TagName string          `json:"tag_name"`
	Assets  []assetResponse `json:"assets"`
}

// assetResponse is one downloadable artifact in the release metadata.
type assetResponse struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	// Digest is "sha256:<hex>" when the release source announces one.
	Digest string `json:"digest"`
}

// Latest fetches the newest release and selects the asset whose file name
// matches the configured product and architecture under the naming convention.
func (c *Client) Latest(ctx context.Context) (*Latest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query release metadata: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", c.endpoint, response.Status, errBadHTTPStatus)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("read release metadata: %w", err)
	}

	var parsed latestResponse
	if err = json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode release metadata: %w", err)
	}

	tagVersion, err := domain.ParseVersion(parsed.TagName)
	if err != nil {
		return nil, fmt.Errorf("release tag: %w", err)
	}

	asset, err := c.selectAsset(ctx, parsed.Assets)
	if err != nil {
		return nil, err
	}

	return &Latest{
		Version: tagVersion,
		Asset:   *asset,
	}, nil
}

// selectAsset picks the sole asset whose name parses under the naming
// convention with the configured product and architecture token.
func (c *Client) selectAsset(ctx context.Context, assets []assetResponse) (*domain.Asset, error) {
	for _, candidate := range assets {
		name, err := domain.ParseArtifactName(candidate.Name)
		if err != nil {
			logger.DebugKV(ctx, "Skipping unconventional asset", "name", candidate.Name)
			continue
		}

		if name.Product != c.product || name.Arch != c.arch {
			continue
		}

		return &domain.Asset{
			Name:     name,
			URL:      candidate.BrowserDownloadURL,
			Checksum: parseDigest(candidate.Digest),
		}, nil
	}

	return nil, fmt.Errorf("product %s, arch %s: %w", c.product, c.arch, ErrNoMatchingAsset)
}

// parseDigest decodes a "sha256:<hex>" digest, returning nil for anything else.
func parseDigest(digest string) []byte {
	encoded, ok := strings.CutPrefix(digest, "sha256:")
	if !ok {
		return nil
	}

	checksum, err := hex.DecodeString(encoded)
	if err != nil {
		return nil
	}

	return checksum
}
