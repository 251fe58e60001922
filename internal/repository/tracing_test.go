package repository

import (
	"context"
	"regexp"
	"testing"

	"classifieds/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans routes observability.Tracer into an in-memory recorder for the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("repository-test")
	t.Cleanup(func() { observability.Tracer = prev })
	return recorder
}

func endedSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range recorder.Ended() {
		if s.Name() == name {
			return s
		}
	}
	require.FailNow(t, "span not recorded", name)
	return nil
}

func TestUserRepository_Delete_Span(t *testing.T) {
	recorder := recordSpans(t)
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	alice := createUser(t, db, "alice")

	require.NoError(t, repo.Delete(context.Background(), alice.ID))
	assert.Equal(t, codes.Unset, endedSpan(t, recorder, "UserRepository.Delete").Status().Code)

	err := repo.Delete(context.Background(), alice.ID)
	require.Error(t, err)
	spans := recorder.Ended()
	last := spans[len(spans)-1]
	assert.Equal(t, "UserRepository.Delete", last.Name())
	assert.Equal(t, codes.Error, last.Status().Code)
}

func TestAdvertisementRepository_Search_Span(t *testing.T) {
	recorder := recordSpans(t)
	db := setupSQLite(t)
	repo := NewAdvertisementRepository(db)
	alice := createUser(t, db, "alice")
	createAd(t, db, alice, "Bike")

	_, err := repo.Search(context.Background(), "bik", 10, 0)
	require.NoError(t, err)

	span := endedSpan(t, recorder, "AdvertisementRepository.Search")
	attrs := map[string]any{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "bik", attrs["search.query"])
	assert.Equal(t, int64(1), attrs["search.results"])
}

func TestAdvertisementRepository_Search_SpanRecordsError(t *testing.T) {
	recorder := recordSpans(t)
	db, mock := setupMockDB(t)
	repo := NewAdvertisementRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`title ILIKE $1`)).WillReturnError(assert.AnError)

	_, err := repo.Search(context.Background(), "bik", 10, 0)
	require.Error(t, err)

	span := endedSpan(t, recorder, "AdvertisementRepository.Search")
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.NotEmpty(t, span.Events())
}
