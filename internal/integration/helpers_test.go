//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/pipeline"
	"github.com/couchcryptid/travel-suitability-service/internal/profiles"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("suitability-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// newTransformer wires the production transformer over the demo dataset.
func newTransformer(t *testing.T) *pipeline.AssessmentTransformer {
	t.Helper()

	store, err := profiles.Load(filepath.Join("..", "..", "data", "profiles.json"))
	require.NoError(t, err)

	assessor := domain.NewAssessor(domain.DefaultThresholds(), domain.DefaultHazardRules(), nil, discardLogger())
	return pipeline.NewTransformer(assessor, store, nil, discardLogger(), 4)
}

// fixtureRequests covers every rating source over the demo dataset.
func fixtureRequests() []domain.AssessmentRequest {
	return []domain.AssessmentRequest{
		{RequestID: "summer-beach", Activity: "beach", Months: []int{6}, Regions: []domain.RegionRef{{ID: "ES-AN"}, {ID: "FR-IDF"}}},
		{RequestID: "hurricane-season", Activity: "beach", Months: []int{8}, Regions: []domain.RegionRef{{ID: "US-FL"}}},
		{RequestID: "otago-hike", Activity: "hike", Months: []int{0, 1}, Regions: []domain.RegionRef{{ID: "NZ-OTA"}}},
		{RequestID: "punjab-city", Activity: "city", Months: []int{0}, Regions: []domain.RegionRef{
			{ID: "IN-PB", Lat: 31, Lon: 75, Admin: "India", Name: "Punjab"},
		}},
	}
}
