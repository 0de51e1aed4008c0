package vision

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/erazemk/garderoba/internal/policy"
)

// classifyResponse is the classification service's success payload.
type classifyResponse struct {
	Predictions []policy.Prediction `json:"predictions"`
}

// ClassifierClient calls the garment type classification service, which
// scores an image against the known garment labels and returns the ranked
// candidates.
type ClassifierClient struct {
	httpClient *resty.Client
}

// NewClassifier builds a classifier client for the given base URL.
func NewClassifier(baseURL string, timeout time.Duration) *ClassifierClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout)

	return &ClassifierClient{httpClient: restyClient}
}

// Classify sends an image and returns the ranked predictions, sorted by
// descending confidence regardless of service ordering.
func (c *ClassifierClient) Classify(ctx context.Context, image []byte) ([]policy.Prediction, error) {
	result := classifyResponse{}
	apiErr := apiError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(image).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/classify")
	if err != nil {
		return nil, fmt.Errorf("calling classifier: %w", err)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status()
		}
		return nil, &ClassificationError{Status: resp.StatusCode(), Message: msg}
	}

	ranked := result.Predictions
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	return ranked, nil
}
