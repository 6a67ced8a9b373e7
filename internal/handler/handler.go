package handler

import (
	"tgju-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SnapshotSource provides the latest extracted snapshot.
type SnapshotSource interface {
	Latest() (*domain.PriceSnapshot, bool)
}

type Handler struct {
	tracer    trace.Tracer
	snapshots SnapshotSource
}

func New(tracer trace.Tracer, snapshots SnapshotSource) *Handler {
	return &Handler{
		tracer:    tracer,
		snapshots: snapshots,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/prices", h.GetAllPrices)
	api.GET("/prices/:id", h.GetPrice)
}
