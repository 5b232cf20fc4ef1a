package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"gdpboard/internal/engine"
	"gdpboard/internal/models"
)

// Snapshot is one immutable loaded dataset plus the dashboard for the
// configured query. It is swapped as a whole, never modified.
type Snapshot struct {
	Dataset   *engine.Dataset
	Dashboard *models.Dashboard
}

type Handler struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewHandler accepts a nil snapshot; every data route answers 503 until SetData.
func NewHandler(snap *Snapshot) *Handler {
	return &Handler{snap: snap}
}

func (h *Handler) SetData(snap *Snapshot) {
	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()
}

func (h *Handler) current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/query", h.GetQuery)
	api.GET("/trend", h.GetTrend)
	api.GET("/slice", h.GetSlice)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

var errLoading = echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")

func (h *Handler) GetHealth(c echo.Context) error {
	snap := h.current()
	if snap == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": snap.Dataset.Len(),
	})
}

func (h *Handler) GetDashboard(c echo.Context) error {
	snap := h.current()
	if snap == nil {
		return errLoading
	}
	return c.JSON(http.StatusOK, snap.Dashboard)
}

// GetQuery answers an ad hoc query. Parameters left out fall back to the
// configured dashboard query.
func (h *Handler) GetQuery(c echo.Context) error {
	snap := h.current()
	if snap == nil {
		return errLoading
	}

	q := snap.Dashboard.Query
	if region := c.QueryParam("region"); region != "" {
		q.Region = region
	}
	if op := c.QueryParam("operation"); op != "" {
		q.Operation = op
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be a non-negative integer")
		}
		q.Year = year
	}

	op, err := engine.ParseOperation(q.Operation)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var kind *models.Kind
	switch c.QueryParam("kind") {
	case "":
		kind = engine.KindFilterFor(q.Region)
	case "any":
	case "entity":
		k := models.KindEntity
		kind = &k
	case "aggregate":
		k := models.KindAggregate
		kind = &k
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be entity, aggregate or any")
	}

	records := engine.Select(snap.Dataset, q.Region, q.Year, kind)
	result, err := engine.Aggregate(records, op)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":   q,
		"scope":   engine.ScopeOf(q.Region),
		"result":  result,
		"records": records,
	})
}

func (h *Handler) GetTrend(c echo.Context) error {
	snap := h.current()
	if snap == nil {
		return errLoading
	}
	region := c.QueryParam("region")
	if region == "" {
		region = snap.Dashboard.Query.Region
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"region": region,
		"trend":  engine.Trend(snap.Dataset, region),
	})
}

// GetSlice returns the country cross-section of one year, paginated.
func (h *Handler) GetSlice(c echo.Context) error {
	snap := h.current()
	if snap == nil {
		return errLoading
	}

	year := snap.Dashboard.Query.Year
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be a non-negative integer")
		}
		year = y
	}

	slice := engine.Slice(snap.Dataset, year)
	total := len(slice)
	limit, offset := getPaginationParams(c, total)

	page := models.QueryResult{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = slice[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"year":   year,
		"data":   page,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
