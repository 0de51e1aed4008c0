package vision

import "fmt"

// SegmentationError reports a failure from the garment segmentation service.
type SegmentationError struct {
	Status  int
	Message string
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("segmentation failed (status %d): %s", e.Status, e.Message)
}

// ClassificationError reports a failure from the type classification service.
type ClassificationError struct {
	Status  int
	Message string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed (status %d): %s", e.Status, e.Message)
}
