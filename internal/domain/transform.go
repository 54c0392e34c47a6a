package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoRegions is returned for requests that name no region.
	ErrNoRegions = errors.New("request has no regions")

	// ErrMissingRegionID is returned when a region reference has a blank id.
	ErrMissingRegionID = errors.New("missing id")
)

// ParseAssessmentRequest deserializes a RawEvent's value into an
// AssessmentRequest.
func ParseAssessmentRequest(raw RawEvent) (AssessmentRequest, error) {
	var req AssessmentRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AssessmentRequest{}, fmt.Errorf("parse assessment request: %w", err)
	}
	return req, nil
}

// NormalizeRequest validates the activity, months and regions of a request
// and assigns a deterministic request ID when none was supplied.
func NormalizeRequest(req AssessmentRequest) (AssessmentRequest, ActivityType, MonthSelection, error) {
	act, err := ParseActivity(strings.TrimSpace(req.Activity))
	if err != nil {
		return req, "", 0, err
	}
	months, err := NewMonthSelection(req.Months...)
	if err != nil {
		return req, "", 0, err
	}
	if len(req.Regions) == 0 {
		return req, "", 0, ErrNoRegions
	}
	for i, r := range req.Regions {
		if strings.TrimSpace(r.ID) == "" {
			return req, "", 0, fmt.Errorf("region %d: %w", i, ErrMissingRegionID)
		}
	}
	if req.RequestID == "" {
		req.RequestID = generateID(act, months, req.Regions)
	}
	return req, act, months, nil
}

// generateID produces a deterministic request ID from activity, months and
// region IDs, so replays of the same request key to the same output.
func generateID(act ActivityType, months MonthSelection, regions []RegionRef) string {
	ids := make([]string, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	input := fmt.Sprintf("%s|%d|%s", act, uint16(months), strings.Join(ids, ","))
	hash := sha256.Sum256([]byte(input))
	return string(act) + "-" + hex.EncodeToString(hash[:8])
}

// SerializeAssessmentResult marshals a result into an OutputEvent keyed by
// request ID.
func SerializeAssessmentResult(res AssessmentResult) (OutputEvent, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize assessment result: %w", err)
	}
	return OutputEvent{
		Key:   []byte(res.RequestID),
		Value: data,
		Headers: map[string]string{
			"activity":    string(res.Activity),
			"assessed_at": res.AssessedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
