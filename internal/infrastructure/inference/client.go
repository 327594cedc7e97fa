// Package inference is the HTTP client for the external AI model service.
// It normalizes the two upstream result shapes (image search and text
// search) into one search.Result so callers never see the drift.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/search"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// Client talks to the inference service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	defaultK   int
	logger     *zap.Logger
}

// NewClient creates an inference client with the configured request timeout
func NewClient(cfg config.InferenceConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		defaultK: cfg.DefaultTopK,
		logger:   logger,
	}
}

// detectResponse is the upstream /img2img/detect payload
type detectResponse struct {
	Candidates []search.RegionCandidate `json:"candidates"`
}

// imageSearchResponse is the upstream /img2img/search payload
type imageSearchResponse struct {
	Results []struct {
		ProductID  string  `json:"product_id"`
		ImageID    string  `json:"image_id"`
		Similarity float64 `json:"similarity"`
	} `json:"results"`
}

// textSearchResponse is the upstream /txt2img/search payload
type textSearchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
		Image string  `json:"image"`
	} `json:"data"`
	TotalFound int `json:"total_found"`
}

// DetectRegions forwards the image to the detector and returns the region
// candidates. An empty list is a valid answer.
func (c *Client) DetectRegions(ctx context.Context, imageBytes []byte, filename string) ([]search.RegionCandidate, error) {
	body, contentType, err := buildImageForm(imageBytes, filename, nil)
	if err != nil {
		return nil, shared.ErrDetectionFailed
	}

	var resp detectResponse
	if err := c.postMultipart(ctx, "/img2img/detect", body, contentType, &resp); err != nil {
		c.logger.Warn("inference detect failed", zap.Error(err))
		return nil, shared.ErrDetectionFailed
	}

	if resp.Candidates == nil {
		return []search.RegionCandidate{}, nil
	}
	return resp.Candidates, nil
}

// SearchByImage runs a visual similarity search and returns the normalized
// matches in upstream rank order.
func (c *Client) SearchByImage(ctx context.Context, imageBytes []byte, filename string, topK int) ([]search.Result, error) {
	if topK <= 0 {
		topK = c.defaultK
	}
	body, contentType, err := buildImageForm(imageBytes, filename, map[string]string{
		"k": strconv.Itoa(topK),
	})
	if err != nil {
		return nil, shared.ErrSearchUnavailable
	}

	var resp imageSearchResponse
	if err := c.postMultipart(ctx, "/img2img/search", body, contentType, &resp); err != nil {
		c.logger.Warn("inference image search failed", zap.Error(err))
		return nil, shared.ErrSearchUnavailable
	}

	results := make([]search.Result, len(resp.Results))
	for i, row := range resp.Results {
		results[i] = search.Result{
			ExternalID:   row.ProductID,
			Similarity:   row.Similarity,
			MatchedImage: row.ImageID,
		}
	}
	return results, nil
}

// SearchByText runs a text-to-image search and returns the normalized
// matches in upstream rank order.
func (c *Client) SearchByText(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if limit <= 0 {
		limit = c.defaultK
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query": query,
		"limit": limit,
	})
	if err != nil {
		return nil, shared.ErrSearchUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/txt2img/search", bytes.NewReader(payload))
	if err != nil {
		return nil, shared.ErrSearchUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	var resp textSearchResponse
	if err := c.do(req, &resp); err != nil {
		c.logger.Warn("inference text search failed", zap.Error(err))
		return nil, shared.ErrSearchUnavailable
	}

	results := make([]search.Result, len(resp.Data))
	for i, row := range resp.Data {
		results[i] = search.Result{
			ExternalID:   row.ID,
			Similarity:   row.Score,
			MatchedImage: row.Image,
		}
	}
	return results, nil
}

// IndexImage registers one product image in the text-search index
func (c *Client) IndexImage(ctx context.Context, productID, imagePath string, imageBytes []byte) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("product_id", productID); err != nil {
		return err
	}
	if err := writer.WriteField("image_path", imagePath); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("image", imagePath)
	if err != nil {
		return err
	}
	if _, err := part.Write(imageBytes); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return c.postMultipart(ctx, "/txt2img/index", body, writer.FormDataContentType(), nil)
}

// DeleteImages removes product images from the text-search index
func (c *Client) DeleteImages(ctx context.Context, productID string, imagePaths []string) error {
	if len(imagePaths) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"product_id":  productID,
		"image_paths": imagePaths,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/txt2img/delete-batch", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) postMultipart(ctx context.Context, path string, body *bytes.Buffer, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("inference service returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// buildImageForm builds a multipart body with the image under field "file"
// plus any extra form fields.
func buildImageForm(imageBytes []byte, filename string, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(imageBytes); err != nil {
		return nil, "", err
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
