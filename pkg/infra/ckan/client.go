package ckan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/gleaner/pkg/utils/sanitize"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultBaseURL is the CKAN action API of data.gov.uk.
const DefaultBaseURL = "https://ckan.publishing.service.gov.uk/api/action"

type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the catalog client
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client. One client instance
// is shared across all concurrent fetches, so the replacement must be safe
// for concurrent use.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a catalog client for a CKAN action API endpoint
func NewClient(baseURL string, options ...Option) interfaces.CatalogClient {
	c := &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// ListDatasets fetches the full dataset index via package_list. The catalog
// wraps the ID list in a result envelope, but some deployments nest it one
// level deeper or return the bare array, so all three shapes are accepted.
func (c *client) ListDatasets(ctx context.Context, limit int) ([]types.DatasetID, error) {
	body, err := c.get(ctx, c.baseURL+"/package_list")
	if err != nil {
		return nil, err
	}

	ids, err := decodeIDList(body)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	result := make([]types.DatasetID, len(ids))
	for i, id := range ids {
		result[i] = types.DatasetID(id)
	}
	return result, nil
}

// GetDataset fetches one dataset detail via package_show
func (c *client) GetDataset(ctx context.Context, id types.DatasetID) (*model.DatasetRecord, error) {
	reqURL := c.baseURL + "/package_show?id=" + url.QueryEscape(string(id))
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch dataset detail", goerr.V("id", id))
	}

	var resp packageShowResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "failed to decode dataset detail",
			goerr.V("id", id),
			goerr.V("cause", err.Error()),
		)
	}

	// The catalog answers 200 with a null result for IDs it has forgotten
	if resp.Result == nil {
		return nil, goerr.Wrap(types.ErrDatasetNotFound, "dataset has no detail record", goerr.V("id", id))
	}

	return resp.Result.toRecord(), nil
}

func (c *client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create catalog request", goerr.V("url", reqURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reach catalog", goerr.V("url", reqURL))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(types.ErrDatasetNotFound, "catalog returned not found", goerr.V("url", reqURL))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected status code from catalog",
			goerr.V("url", reqURL),
			goerr.V("code", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog response", goerr.V("url", reqURL))
	}

	return body, nil
}

// decodeIDList accepts the plain result envelope, a result envelope with one
// extra level of nesting, and a bare JSON array.
func decodeIDList(body []byte) ([]string, error) {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Result) > 0 {
		var ids []string
		if err := json.Unmarshal(envelope.Result, &ids); err == nil && ids != nil {
			return ids, nil
		}

		var nested struct {
			Results []string `json:"results"`
		}
		if err := json.Unmarshal(envelope.Result, &nested); err == nil && nested.Results != nil {
			return nested.Results, nil
		}

		return nil, goerr.Wrap(types.ErrInvalidResponse, "unexpected index envelope shape")
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "failed to decode dataset index",
			goerr.V("cause", err.Error()),
		)
	}
	return ids, nil
}

type packageShowResponse struct {
	Result *datasetPayload `json:"result"`
}

type datasetPayload struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Notes            string              `json:"notes"`
	LicenseTitle     string              `json:"license_title"`
	Organization     organizationPayload `json:"organization"`
	MetadataCreated  string              `json:"metadata_created"`
	MetadataModified string              `json:"metadata_modified"`
	Resources        []resourcePayload   `json:"resources"`
}

type organizationPayload struct {
	Title string `json:"title"`
}

// resourcePayload keeps format and url as pointers so a resource that omits
// a field is skipped without conflating it with a present-but-empty value.
type resourcePayload struct {
	Format *string `json:"format"`
	URL    *string `json:"url"`
}

// toRecord flattens the CKAN payload into a dataset record: the description
// is stripped of markup, formats collapse into one comma-joined field, and
// download URLs keep their resource order.
func (d *datasetPayload) toRecord() *model.DatasetRecord {
	formats := make([]string, 0, len(d.Resources))
	urls := make([]string, 0, len(d.Resources))
	for _, res := range d.Resources {
		if res.Format != nil {
			formats = append(formats, *res.Format)
		}
		if res.URL != nil {
			urls = append(urls, *res.URL)
		}
	}

	return &model.DatasetRecord{
		ID:           types.DatasetID(d.ID),
		Title:        d.Title,
		Description:  sanitize.StripTags(d.Notes),
		License:      d.LicenseTitle,
		Organization: d.Organization.Title,
		Created:      d.MetadataCreated,
		Modified:     d.MetadataModified,
		Format:       strings.Join(formats, ", "),
		DownloadURLs: urls,
	}
}
