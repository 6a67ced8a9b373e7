package handler

import (
	"net/http"
	"strings"
	"time"

	"tgju-tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type priceEntry struct {
	InstrumentID string                   `json:"instrument_id"`
	Price        float64                  `json:"price"`
	Names        map[domain.Locale]string `json:"names"`
}

type pricesResponse struct {
	CapturedAt time.Time    `json:"captured_at"`
	Prices     []priceEntry `json:"prices"`
}

// GetAllPrices godoc
// @Summary      Get the latest prices for all tracked instruments
// @Description  Returns the latest snapshot in catalog order with names in every locale
// @Tags         prices
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  pricesResponse
// @Failure      503  {object}  map[string]string
// @Router       /api/prices [get]
func (h *Handler) GetAllPrices(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-all-prices")
	defer span.End()

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot captured yet"})
		return
	}

	resp := pricesResponse{
		CapturedAt: snapshot.CapturedAt,
		Prices:     make([]priceEntry, 0, len(snapshot.Prices)),
	}
	for _, id := range snapshot.InstrumentIDs() {
		resp.Prices = append(resp.Prices, priceEntry{
			InstrumentID: id,
			Price:        snapshot.Prices[id],
			Names:        domain.CatalogByID[id].Names,
		})
	}
	span.SetAttributes(attribute.Int("instruments", len(resp.Prices)))

	c.JSON(http.StatusOK, resp)
}

// GetPrice godoc
// @Summary      Get the latest price for one instrument
// @Description  Returns one instrument from the latest snapshot
// @Tags         prices
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Instrument ID (e.g., price_dollar_rl, price_ounce)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/prices/{id} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	id := strings.ToLower(strings.TrimSpace(c.Param("id")))
	span.SetAttributes(attribute.String("instrument", id))

	inst, ok := domain.LookupInstrument(id)
	if !ok {
		supported := make([]string, 0, len(domain.Catalog))
		for _, i := range domain.Catalog {
			supported = append(supported, i.ID)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                 "unsupported instrument: " + id,
			"supported_instruments": supported,
		})
		return
	}

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot captured yet"})
		return
	}
	price, ok := snapshot.Prices[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price reported for " + id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instrument_id": id,
		"price":         price,
		"names":         inst.Names,
		"captured_at":   snapshot.CapturedAt,
	})
}
