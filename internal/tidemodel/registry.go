// Package tidemodel catalogs the supported tide model solutions and the
// file layouts they are distributed in.
package tidemodel

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// Format identifies the on-disk layout of a model's harmonic constants.
type Format string

const (
	// FormatOTIS is the OSU/ESR gridded binary layout with a separate
	// bathymetry grid file and a multi-constituent elevation file.
	FormatOTIS Format = "OTIS"
	// FormatATLAS is the layout of the high resolution TPXO8 atlas.
	// Its files follow the OTIS record framing; compacted variants
	// carry a different header and are rejected by the reader.
	FormatATLAS Format = "ATLAS"
	// FormatNetCDF is the TPXO9 atlas layout: one NetCDF file per
	// constituent plus a NetCDF grid file.
	FormatNetCDF Format = "netcdf"
	// FormatGOT is the GSFC layout: one gzipped ASCII grid per
	// constituent.
	FormatGOT Format = "GOT"
)

// CRS identifies the coordinate system the model grid is published in.
// Only geographic grids are usable here; the polar stereographic
// solutions keep their tags so they can be rejected with a clear error.
type CRS string

const (
	CRSGeographic CRS = "4326"
	CRSCats2008   CRS = "CATS2008"
	CRSPSNorth    CRS = "PSNorth"
)

// Descriptor holds everything needed to open a model: which reader to
// use, where its files live relative to the data directory, and how its
// values map to meters.
type Descriptor struct {
	Name      string
	Format    Format
	CRS       CRS
	Directory string
	// GridFile is the bathymetry/mask grid for the OTIS, ATLAS and
	// NetCDF layouts. GOT models carry their own grids per file.
	GridFile string
	// ModelFile is the single multi-constituent elevation file of the
	// OTIS and ATLAS layouts.
	ModelFile string
	// ModelFiles are the per-constituent files of the NetCDF and GOT
	// layouts, ordered to match Constituents.
	ModelFiles []string
	// Constituents names the tabulated constituents for layouts whose
	// files do not embed usable names.
	Constituents []string
	// Scale converts stored values to meters. Zero means no scaling.
	Scale float64
	// Load marks load tide solutions as opposed to ocean tide.
	Load bool
	// RequiresDeltaTime marks solutions whose arguments are evaluated
	// in dynamical time, needing the TT minus UT1 table.
	RequiresDeltaTime bool
	Reference         string
}

// ErrUnknownModel is returned by Lookup for names outside the registry.
var ErrUnknownModel = errors.New("unknown tide model")

var gotConstituents = []string{"q1", "o1", "p1", "k1", "n2", "m2", "s2", "k2", "s1", "m4"}

var gotOceanFiles = []string{"q1.d.gz", "o1.d.gz", "p1.d.gz", "k1.d.gz", "n2.d.gz",
	"m2.d.gz", "s2.d.gz", "k2.d.gz", "s1.d.gz", "m4.d.gz"}

var gotLoadFiles = []string{"q1load.d.gz", "o1load.d.gz", "p1load.d.gz", "k1load.d.gz",
	"n2load.d.gz", "m2load.d.gz", "s2load.d.gz", "k2load.d.gz", "s1load.d.gz", "m4load.d.gz"}

var tpxo9AtlasConstituents = []string{"q1", "o1", "p1", "k1", "n2", "m2",
	"s2", "k2", "m4", "ms4", "mn4", "2n2"}

var tpxo9AtlasFiles = []string{
	"h_q1_tpxo9_atlas_30.nc.gz", "h_o1_tpxo9_atlas_30.nc.gz",
	"h_p1_tpxo9_atlas_30.nc.gz", "h_k1_tpxo9_atlas_30.nc.gz",
	"h_n2_tpxo9_atlas_30.nc.gz", "h_m2_tpxo9_atlas_30.nc.gz",
	"h_s2_tpxo9_atlas_30.nc.gz", "h_k2_tpxo9_atlas_30.nc.gz",
	"h_m4_tpxo9_atlas_30.nc.gz", "h_ms4_tpxo9_atlas_30.nc.gz",
	"h_mn4_tpxo9_atlas_30.nc.gz", "h_2n2_tpxo9_atlas_30.nc.gz",
}

const (
	esrPolarModels = "https://www.esr.org/research/polar-tide-models/list-of-polar-tide-models/"
	osuTides       = "http://volkov.oce.orst.edu/tides/global.html"
	gsfcGOT        = "https://denali.gsfc.nasa.gov/personal_pages/ray/MiscPubs/19990089548_1999150788.pdf"
)

var registry = map[string]Descriptor{
	"CATS0201": {
		Name: "CATS0201", Format: FormatOTIS, CRS: CRSGeographic,
		Directory: "cats0201_tmd", GridFile: "grid_CATS", ModelFile: "h0_CATS02_01",
		Reference: "https://mail.esr.org/polar_tide_models/Model_CATS0201.html",
	},
	"CATS2008": {
		Name: "CATS2008", Format: FormatOTIS, CRS: CRSCats2008,
		Directory: "CATS2008", GridFile: "grid_CATS2008a_opt", ModelFile: "hf.CATS2008.out",
		Reference: esrPolarModels + "cats2008/",
	},
	"CATS2008_load": {
		Name: "CATS2008_load", Format: FormatOTIS, CRS: CRSCats2008, Load: true,
		Directory: "CATS2008a_SPOTL_Load", GridFile: "grid_CATS2008a_opt",
		ModelFile: "h_CATS2008a_SPOTL_load",
		Reference: esrPolarModels + "cats2008/",
	},
	"TPXO9-atlas": {
		Name: "TPXO9-atlas", Format: FormatNetCDF, CRS: CRSGeographic,
		Directory: "TPXO9_atlas", GridFile: "grid_tpxo9_atlas.nc.gz",
		ModelFiles: tpxo9AtlasFiles, Constituents: tpxo9AtlasConstituents,
		Scale:     1.0 / 1000.0,
		Reference: "http://volkov.oce.orst.edu/tides/tpxo9_atlas.html",
	},
	"TPXO9.1": {
		Name: "TPXO9.1", Format: FormatOTIS, CRS: CRSGeographic,
		Directory: filepath.Join("TPXO9.1", "DATA"),
		GridFile:  "grid_tpxo9", ModelFile: "h_tpxo9.v1",
		Reference: osuTides,
	},
	"TPXO8-atlas": {
		Name: "TPXO8-atlas", Format: FormatATLAS, CRS: CRSGeographic,
		Directory: "tpxo8_atlas", GridFile: "grid_tpxo8atlas_30_v1",
		ModelFile: "hf.tpxo8_atlas_30_v1",
		Reference: "http://volkov.oce.orst.edu/tides/tpxo8_atlas.html",
	},
	"TPXO7.2": {
		Name: "TPXO7.2", Format: FormatOTIS, CRS: CRSGeographic,
		Directory: "TPXO7.2_tmd", GridFile: "grid_tpxo7.2", ModelFile: "h_tpxo7.2",
		Reference: osuTides,
	},
	"TPXO7.2_load": {
		Name: "TPXO7.2_load", Format: FormatOTIS, CRS: CRSGeographic, Load: true,
		Directory: "TPXO7.2_load", GridFile: "grid_tpxo6.2", ModelFile: "h_tpxo7.2_load",
		Reference: osuTides,
	},
	"AODTM-5": {
		Name: "AODTM-5", Format: FormatOTIS, CRS: CRSPSNorth,
		Directory: "aodtm5_tmd", GridFile: "grid_Arc5km", ModelFile: "h0_Arc5km.oce",
		Reference: esrPolarModels + "aodtm-5/",
	},
	"AOTIM-5": {
		Name: "AOTIM-5", Format: FormatOTIS, CRS: CRSPSNorth,
		Directory: "aotim5_tmd", GridFile: "grid_Arc5km", ModelFile: "h_Arc5km.oce",
		Reference: esrPolarModels + "aotim-5/",
	},
	"AOTIM-5-2018": {
		Name: "AOTIM-5-2018", Format: FormatOTIS, CRS: CRSPSNorth,
		Directory: "Arc5km2018", GridFile: "grid_Arc5km2018", ModelFile: "h_Arc5km2018",
		Reference: esrPolarModels + "aotim-5/",
	},
	"GOT4.7": {
		Name: "GOT4.7", Format: FormatGOT, CRS: CRSGeographic,
		Directory:  filepath.Join("GOT4.7", "grids_oceantide"),
		ModelFiles: gotOceanFiles, Constituents: gotConstituents,
		Scale: 1.0 / 100.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
	"GOT4.7_load": {
		Name: "GOT4.7_load", Format: FormatGOT, CRS: CRSGeographic, Load: true,
		Directory:  filepath.Join("GOT4.7", "grids_loadtide"),
		ModelFiles: gotLoadFiles, Constituents: gotConstituents,
		Scale: 1.0 / 1000.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
	"GOT4.8": {
		Name: "GOT4.8", Format: FormatGOT, CRS: CRSGeographic,
		Directory:  filepath.Join("got4.8", "grids_oceantide"),
		ModelFiles: gotOceanFiles, Constituents: gotConstituents,
		Scale: 1.0 / 100.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
	"GOT4.8_load": {
		Name: "GOT4.8_load", Format: FormatGOT, CRS: CRSGeographic, Load: true,
		Directory:  filepath.Join("got4.8", "grids_loadtide"),
		ModelFiles: gotLoadFiles, Constituents: gotConstituents,
		Scale: 1.0 / 1000.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
	"GOT4.10": {
		Name: "GOT4.10", Format: FormatGOT, CRS: CRSGeographic,
		Directory:  filepath.Join("GOT4.10c", "grids_oceantide"),
		ModelFiles: gotOceanFiles, Constituents: gotConstituents,
		Scale: 1.0 / 100.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
	"GOT4.10_load": {
		Name: "GOT4.10_load", Format: FormatGOT, CRS: CRSGeographic, Load: true,
		Directory:  filepath.Join("GOT4.10c", "grids_loadtide"),
		ModelFiles: gotLoadFiles, Constituents: gotConstituents,
		Scale: 1.0 / 1000.0, RequiresDeltaTime: true,
		Reference: gsfcGOT,
	},
}

// Lookup resolves a model name to its descriptor.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return d, nil
}

// Names lists the registered model names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GridPath resolves the model's grid file under the data directory.
// Empty for GOT models, which embed their grids.
func (d Descriptor) GridPath(dataDir string) string {
	if d.GridFile == "" {
		return ""
	}
	return filepath.Join(dataDir, d.Directory, d.GridFile)
}

// ModelPath resolves the single elevation file of the OTIS and ATLAS
// layouts under the data directory.
func (d Descriptor) ModelPath(dataDir string) string {
	if d.ModelFile == "" {
		return ""
	}
	return filepath.Join(dataDir, d.Directory, d.ModelFile)
}

// ModelPaths resolves the per-constituent files of the NetCDF and GOT
// layouts under the data directory.
func (d Descriptor) ModelPaths(dataDir string) []string {
	if len(d.ModelFiles) == 0 {
		return nil
	}
	paths := make([]string, len(d.ModelFiles))
	for i, f := range d.ModelFiles {
		paths[i] = filepath.Join(dataDir, d.Directory, f)
	}
	return paths
}
