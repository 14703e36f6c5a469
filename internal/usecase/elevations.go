// Package usecase wires model extraction, harmonic synthesis and minor
// constituent inference into tidal elevation predictions.
package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/mqquiroz/pyTMD/internal/adapter/store"
	"github.com/mqquiroz/pyTMD/internal/adapter/store/atlasnc"
	"github.com/mqquiroz/pyTMD/internal/adapter/store/got"
	"github.com/mqquiroz/pyTMD/internal/adapter/store/otis"
	"github.com/mqquiroz/pyTMD/internal/domain"
	"github.com/mqquiroz/pyTMD/internal/metrics"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

// FillValue replaces the elevation of points the model cannot resolve.
const FillValue = -9999.0

// ObservationPoint is one prediction request: an epoch as a Modified
// Julian Day and a geographic position in degrees.
type ObservationPoint struct {
	MJD float64
	Lat float64
	Lon float64
}

// PredictionResult holds per-point elevations in input order. Invalid
// points carry FillValue and a false Valid entry.
type PredictionResult struct {
	Elevation []float64
	Valid     []bool
	// Constituents are the model's tabulated constituents in file order.
	Constituents []string
	// OmittedMinorTerms counts inference rows dropped because their
	// admittance sources were not tabulated by the model.
	OmittedMinorTerms int
}

// DeltaTimeSource supplies TT minus UT1 offsets in seconds per epoch.
type DeltaTimeSource interface {
	DeltaTime(mjd []float64) []float64
}

// OpenSource opens the extractor matching the model's file layout.
func OpenSource(desc tidemodel.Descriptor, dataDir string) (store.ConstituentSource, error) {
	switch desc.Format {
	case tidemodel.FormatOTIS, tidemodel.FormatATLAS:
		return otis.Open(desc, dataDir)
	case tidemodel.FormatNetCDF:
		return atlasnc.Open(desc, dataDir)
	case tidemodel.FormatGOT:
		return got.Open(desc, dataDir)
	default:
		return nil, fmt.Errorf("no reader for model format %q", desc.Format)
	}
}

// Pipeline predicts elevations for one opened model.
type Pipeline struct {
	desc   tidemodel.Descriptor
	source store.ConstituentSource
	deltat DeltaTimeSource
}

// NewPipeline builds a pipeline over an opened constituent source.
// deltat may be nil for models that do not use dynamical time.
func NewPipeline(desc tidemodel.Descriptor, source store.ConstituentSource, deltat DeltaTimeSource) (*Pipeline, error) {
	if desc.RequiresDeltaTime && deltat == nil {
		return nil, fmt.Errorf("model %s needs a delta time table", desc.Name)
	}
	return &Pipeline{desc: desc, source: source, deltat: deltat}, nil
}

// Predict computes the tidal elevation at every point. Results keep the
// input order and length; points the model cannot resolve come back as
// FillValue rather than failing the batch.
func (p *Pipeline) Predict(points []ObservationPoint) (*PredictionResult, error) {
	n := len(points)
	lat := make([]float64, n)
	lon := make([]float64, n)
	mjd := make([]float64, n)
	t := make([]float64, n)
	for i, pt := range points {
		lat[i] = pt.Lat
		lon[i] = pt.Lon
		mjd[i] = pt.MJD
		t[i] = pt.MJD - domain.ModelEpochMJD
	}

	constants, err := p.source.Extract(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("extracting constants: %w", err)
	}

	var dt []float64
	if p.desc.RequiresDeltaTime {
		dt = p.deltat.DeltaTime(mjd)
	}

	hc := make([][]complex128, n)
	for i := 0; i < n; i++ {
		hc[i] = domain.PackConstants(constants.Amplitude[i], constants.Phase[i])
	}

	method := domain.ArgLinear
	if p.desc.Format == tidemodel.FormatGOT {
		method = domain.ArgEquilibrium
	}

	ht, err := domain.PredictDrift(t, hc, constants.Names, dt, method)
	if err != nil {
		return nil, fmt.Errorf("synthesizing elevations: %w", err)
	}
	minor, omitted, err := domain.MinorCorrections(t, hc, constants.Names, dt)
	if err != nil {
		return nil, fmt.Errorf("inferring minor constituents: %w", err)
	}

	res := &PredictionResult{
		Elevation:         make([]float64, n),
		Valid:             make([]bool, n),
		Constituents:      constants.Names,
		OmittedMinorTerms: omitted,
	}
	for i := 0; i < n; i++ {
		if constants.PointValid(i) {
			res.Elevation[i] = ht[i] + minor[i]
			res.Valid[i] = true
		} else {
			res.Elevation[i] = FillValue
		}
	}
	return res, nil
}

// Model returns the pipeline's model descriptor.
func (p *Pipeline) Model() tidemodel.Descriptor {
	return p.desc
}

// Service predicts elevations across models, opening each model once
// and caching the pipeline.
type Service struct {
	dataDir string
	deltat  DeltaTimeSource

	mu        sync.Mutex
	pipelines map[string]*Pipeline
}

// NewService builds a service over a tide data directory. deltat may be
// nil; models that need dynamical time then fail at open.
func NewService(dataDir string, deltat DeltaTimeSource) *Service {
	return &Service{
		dataDir:   dataDir,
		deltat:    deltat,
		pipelines: make(map[string]*Pipeline),
	}
}

// Predict resolves the model by name and predicts the batch, recording
// metrics along the way.
func (s *Service) Predict(model string, points []ObservationPoint) (*PredictionResult, error) {
	pipeline, err := s.pipeline(model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := pipeline.Predict(points)
	if err != nil {
		return nil, err
	}
	metrics.PredictionDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	metrics.PredictionBatches.WithLabelValues(model).Inc()
	metrics.PredictionPoints.WithLabelValues(model).Add(float64(len(points)))
	invalid := 0
	for _, ok := range res.Valid {
		if !ok {
			invalid++
		}
	}
	metrics.InvalidPoints.WithLabelValues(model).Add(float64(invalid))
	metrics.OmittedMinorTerms.WithLabelValues(model).Add(float64(res.OmittedMinorTerms))
	return res, nil
}

func (s *Service) pipeline(model string) (*Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pipelines[model]; ok {
		return p, nil
	}

	desc, err := tidemodel.Lookup(model)
	if err != nil {
		return nil, err
	}
	source, err := OpenSource(desc, s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", model, err)
	}
	p, err := NewPipeline(desc, source, s.deltat)
	if err != nil {
		return nil, err
	}
	s.pipelines[model] = p
	return p, nil
}
