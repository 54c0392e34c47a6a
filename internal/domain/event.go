package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RegionRef identifies a region in an assessment request. Lat/Lon, Admin and
// Name are optional when the region has a profile in the dataset.
type RegionRef struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
	Admin string  `json:"admin,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// AssessmentRequest asks for the rating of a set of regions, typically every
// region visible on a map.
type AssessmentRequest struct {
	RequestID string      `json:"request_id,omitempty"`
	Activity  string      `json:"activity"`
	Months    []int       `json:"months"`
	Regions   []RegionRef `json:"regions"`
}

// AssessmentResult is the rated form of an AssessmentRequest. Assessments
// keep the request's region order.
type AssessmentResult struct {
	RequestID   string         `json:"request_id"`
	Activity    ActivityType   `json:"activity"`
	Months      MonthSelection `json:"months"`
	Assessments []Assessment   `json:"assessments"`
	AssessedAt  time.Time      `json:"assessed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
