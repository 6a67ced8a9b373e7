package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tgju-tracker/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const mirrorKeyPrefix = "tgju:price:"

type PageFetcher interface {
	FetchPage(ctx context.Context) ([]byte, error)
}

type SnapshotExtractor interface {
	Extract(ctx context.Context, page []byte) (*domain.PriceSnapshot, error)
}

type SnapshotStore interface {
	Load() (domain.PersistedMap, error)
	Save(m domain.PersistedMap) error
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CycleResult is the outcome of one successful fetch cycle. SaveErr is set
// when the new state could not be persisted; the changes are still valid.
type CycleResult struct {
	Snapshot *domain.PriceSnapshot
	Changes  []domain.PriceChange
	SaveErr  error
}

// TrackerService runs the fetch, extract, diff and persist cycle. It owns the
// in-memory copy of the persisted records and is driven by a single goroutine.
type TrackerService struct {
	tracer    trace.Tracer
	fetcher   PageFetcher
	extractor SnapshotExtractor
	store     SnapshotStore
	redis     RedisClient
	mirrorTTL time.Duration
	view      *SnapshotView

	previous domain.PersistedMap
}

func NewTrackerService(
	tracer trace.Tracer,
	fetcher PageFetcher,
	extractor SnapshotExtractor,
	store SnapshotStore,
	redisClient RedisClient,
	mirrorTTL time.Duration,
) *TrackerService {
	return &TrackerService{
		tracer:    tracer,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		redis:     redisClient,
		mirrorTTL: mirrorTTL,
		view:      NewSnapshotView(),
		previous:  domain.PersistedMap{},
	}
}

// LoadState reads the persisted records once at startup. On failure the
// service keeps an empty prior state and the error is returned for reporting.
func (s *TrackerService) LoadState() error {
	m, err := s.store.Load()
	if m == nil {
		m = domain.PersistedMap{}
	}
	s.previous = m
	return err
}

// Previous exposes the prior records the next cycle will diff against.
func (s *TrackerService) Previous() domain.PersistedMap {
	return s.previous
}

func (s *TrackerService) View() *SnapshotView {
	return s.view
}

// RunCycle fetches and extracts a snapshot, diffs it against the prior
// records, then persists the flattened snapshot. Fetch and extract failures
// leave the prior state untouched.
func (s *TrackerService) RunCycle(ctx context.Context) (*CycleResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker-service.run-cycle")
	defer span.End()

	page, err := s.fetcher.FetchPage(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	snapshot, err := s.extractor.Extract(ctx, page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	changes := DetectChanges(snapshot, s.previous)
	next := domain.Flatten(snapshot)

	result := &CycleResult{Snapshot: snapshot, Changes: changes}
	if err := s.store.Save(next); err != nil {
		log.Printf("state save error: %v", err)
		span.RecordError(err)
		result.SaveErr = err
	}
	s.previous = next

	s.view.Set(snapshot)
	if s.redis != nil {
		s.mirror(ctx, snapshot)
	}

	span.SetAttributes(
		attribute.Int("instruments", len(snapshot.Prices)),
		attribute.Int("changes", len(changes)),
	)
	return result, nil
}

type mirroredPrice struct {
	InstrumentID string                   `json:"instrument_id"`
	Price        float64                  `json:"price"`
	Names        map[domain.Locale]string `json:"names"`
	CapturedAt   time.Time                `json:"captured_at"`
}

func (s *TrackerService) mirror(ctx context.Context, snapshot *domain.PriceSnapshot) {
	for _, id := range snapshot.InstrumentIDs() {
		data, err := json.Marshal(mirroredPrice{
			InstrumentID: id,
			Price:        snapshot.Prices[id],
			Names:        domain.CatalogByID[id].Names,
			CapturedAt:   snapshot.CapturedAt,
		})
		if err != nil {
			log.Printf("redis mirror encode error for %s: %v", id, err)
			continue
		}
		if err := s.redis.Set(ctx, mirrorKeyPrefix+id, data, s.mirrorTTL).Err(); err != nil {
			log.Printf("redis mirror write error for %s: %v", id, err)
			return
		}
	}
}
