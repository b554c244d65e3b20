package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/murkotick/offering-catalog-service/internal/models/m_service_package"
	"github.com/murkotick/offering-catalog-service/internal/models/m_service_type"
)

type outboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Status      string
	CreatedAt   time.Time
}

func mustFetchOutboxEvents(ctx context.Context, t *testing.T, client *spanner.Client, aggregateID string) []outboxEvent {
	t.Helper()
	items, err := fetchOutboxEvents(ctx, client, aggregateID)
	require.NoError(t, err)
	return items
}

func fetchOutboxEvents(ctx context.Context, client *spanner.Client, aggregateID string) ([]outboxEvent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, status, created_at
        FROM outbox_events
        WHERE aggregate_id = @id
        ORDER BY created_at ASC, event_id ASC`,
		Params: map[string]any{"id": aggregateID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]outboxEvent, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var e outboxEvent
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

// seedServiceType inserts a service-type catalog row and returns its id.
func seedServiceType(ctx context.Context, t *testing.T, code, status string) string {
	t.Helper()
	id := uuid.New().String()
	mut := spanner.InsertMap(m_service_type.TableName, map[string]interface{}{
		m_service_type.ColServiceTypeID: id,
		m_service_type.ColCode:          code,
		m_service_type.ColName:          "Service type " + code,
		m_service_type.ColStatus:        status,
		m_service_type.ColCreatedAt:     time.Now().UTC(),
	})
	_, err := spClient.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)
	return id
}

// seedServicePackage inserts a service-package catalog row and returns its id.
func seedServicePackage(ctx context.Context, t *testing.T, code, status string) string {
	t.Helper()
	id := uuid.New().String()
	mut := spanner.InsertMap(m_service_package.TableName, map[string]interface{}{
		m_service_package.ColServicePackageID: id,
		m_service_package.ColCode:             code,
		m_service_package.ColName:             "Service package " + code,
		m_service_package.ColStatus:           status,
		m_service_package.ColCreatedAt:        time.Now().UTC(),
	})
	_, err := spClient.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)
	return id
}
