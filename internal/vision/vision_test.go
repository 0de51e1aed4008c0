package vision

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSegmentReturnsBody(t *testing.T) {
	var gotPath, gotCrop string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCrop = r.URL.Query().Get("crop_face")
		body, _ := io.ReadAll(r.Body)
		if string(body) != "raw image" {
			t.Errorf("unexpected request body %q", body)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("segmented png"))
	}))
	defer server.Close()

	client := NewSegmenter(server.URL, time.Second, true)
	out, err := client.Segment(context.Background(), []byte("raw image"))
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if string(out) != "segmented png" {
		t.Errorf("expected service body back, got %q", out)
	}
	if gotPath != "/v1/segment" {
		t.Errorf("expected /v1/segment, got %q", gotPath)
	}
	if gotCrop != "true" {
		t.Errorf("expected crop_face=true, got %q", gotCrop)
	}
}

func TestSegmentServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "no garment found"}`))
	}))
	defer server.Close()

	client := NewSegmenter(server.URL, time.Second, false)
	_, err := client.Segment(context.Background(), []byte("x"))

	var segErr *SegmentationError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected SegmentationError, got %v", err)
	}
	if segErr.Status != http.StatusUnprocessableEntity || segErr.Message != "no garment found" {
		t.Errorf("unexpected error details: %+v", segErr)
	}
}

func TestClassifyParsesAndSortsPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/classify" {
			t.Errorf("expected /v1/classify, got %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions": [
			{"label": "pants", "confidence": 0.2},
			{"label": "shirt", "confidence": 0.7}
		]}`))
	}))
	defer server.Close()

	client := NewClassifier(server.URL, time.Second)
	preds, err := client.Classify(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(preds))
	}
	if preds[0].Label != "shirt" || preds[1].Label != "pants" {
		t.Errorf("expected descending confidence order, got %+v", preds)
	}
}

func TestClassifyServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClassifier(server.URL, time.Second)
	_, err := client.Classify(context.Background(), []byte("x"))

	var clsErr *ClassificationError
	if !errors.As(err, &clsErr) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
	if clsErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", clsErr.Status)
	}
}
