package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mqquiroz/pyTMD/internal/domain"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
	"github.com/mqquiroz/pyTMD/internal/usecase"
)

// Predictor computes tidal elevations for a batch of points.
type Predictor interface {
	Predict(model string, points []usecase.ObservationPoint) (*usecase.PredictionResult, error)
}

// Handler handles HTTP requests for tidal elevation predictions.
type Handler struct {
	predictor    Predictor
	defaultModel string
}

// NewHandler creates a new HTTP handler.
func NewHandler(predictor Predictor, defaultModel string) *Handler {
	return &Handler{predictor: predictor, defaultModel: defaultModel}
}

// ElevationRequest is the body of POST /v1/tides/elevations.
type ElevationRequest struct {
	Model  string `json:"model"`
	Points []struct {
		MJD float64 `json:"mjd"`
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"points" binding:"required"`
}

// ElevationResponse mirrors the request's point order.
type ElevationResponse struct {
	Model             string    `json:"model"`
	Elevation         []float64 `json:"elevation"`
	Valid             []bool    `json:"valid"`
	FillValue         float64   `json:"fill_value"`
	Constituents      []string  `json:"constituents"`
	OmittedMinorTerms int       `json:"omitted_minor_terms"`
}

// PostElevations handles POST /v1/tides/elevations.
func (h *Handler) PostElevations(c *gin.Context) {
	var req ElevationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}

	points := make([]usecase.ObservationPoint, len(req.Points))
	for i, p := range req.Points {
		points[i] = usecase.ObservationPoint{MJD: p.MJD, Lat: p.Lat, Lon: p.Lon}
	}

	res, err := h.predictor.Predict(model, points)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tidemodel.ErrUnknownModel) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ElevationResponse{
		Model:             model,
		Elevation:         res.Elevation,
		Valid:             res.Valid,
		FillValue:         usecase.FillValue,
		Constituents:      res.Constituents,
		OmittedMinorTerms: res.OmittedMinorTerms,
	})
}

// ModelInfo describes one registered tide model.
type ModelInfo struct {
	Name              string `json:"name"`
	Format            string `json:"format"`
	Load              bool   `json:"load"`
	RequiresDeltaTime bool   `json:"requires_delta_time"`
	Reference         string `json:"reference,omitempty"`
}

// GetModels handles GET /v1/models.
func (h *Handler) GetModels(c *gin.Context) {
	names := tidemodel.Names()
	models := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		d, err := tidemodel.Lookup(name)
		if err != nil {
			continue
		}
		models = append(models, ModelInfo{
			Name:              d.Name,
			Format:            string(d.Format),
			Load:              d.Load,
			RequiresDeltaTime: d.RequiresDeltaTime,
			Reference:         d.Reference,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"models": models,
		"count":  len(models),
	})
}

// ConstituentInfo describes one cataloged constituent.
type ConstituentInfo struct {
	Name    string  `json:"name"`
	Omega   float64 `json:"omega_rad_per_s"`
	Species int     `json:"species"`
}

// GetConstituents handles GET /v1/constituents.
func (h *Handler) GetConstituents(c *gin.Context) {
	names := domain.ConstituentNames()
	constituents := make([]ConstituentInfo, 0, len(names))
	for _, name := range names {
		cc, ok := domain.LookupConstituent(name)
		if !ok {
			continue
		}
		constituents = append(constituents, ConstituentInfo{
			Name:    name,
			Omega:   cc.Omega,
			Species: cc.Species,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"constituents": constituents,
		"count":        len(constituents),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
