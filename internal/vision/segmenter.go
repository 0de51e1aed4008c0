// Package vision holds HTTP clients for the external ML collaborators: the
// garment segmenter (background removal) and the type classifier. Both run as
// separate inference services; this package only speaks their wire contracts.
package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single inference call. Model inference is slow
// compared to regular APIs, so this is generous.
const DefaultTimeout = 60 * time.Second

// apiError is the error payload both inference services return.
type apiError struct {
	Error string `json:"error"`
}

// SegmenterClient calls the garment segmentation service, which removes the
// image background (and optionally crops below a detected face) and returns
// an RGBA PNG with an alpha-zero background.
type SegmenterClient struct {
	httpClient *resty.Client
	cropFace   bool
}

// NewSegmenter builds a segmenter client for the given base URL.
func NewSegmenter(baseURL string, timeout time.Duration, cropFace bool) *SegmenterClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout)

	return &SegmenterClient{httpClient: restyClient, cropFace: cropFace}
}

// Segment sends an image and returns the segmented PNG bytes.
func (c *SegmenterClient) Segment(ctx context.Context, image []byte) ([]byte, error) {
	result := apiError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetQueryParam("crop_face", fmt.Sprintf("%t", c.cropFace)).
		SetBody(image).
		SetError(&result).
		Post("/v1/segment")
	if err != nil {
		return nil, fmt.Errorf("calling segmenter: %w", err)
	}

	if resp.IsError() {
		msg := result.Error
		if msg == "" {
			msg = resp.Status()
		}
		return nil, &SegmentationError{Status: resp.StatusCode(), Message: msg}
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, &SegmentationError{Status: resp.StatusCode(), Message: "empty response body"}
	}
	return body, nil
}
