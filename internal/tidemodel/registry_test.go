package tidemodel

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup_KnownModels(t *testing.T) {
	for _, name := range Names() {
		d, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if d.Name != name {
			t.Errorf("Lookup(%q): descriptor named %q", name, d.Name)
		}
		switch d.Format {
		case FormatOTIS, FormatATLAS:
			if d.GridFile == "" || d.ModelFile == "" {
				t.Errorf("%s: gridded binary model missing file names", name)
			}
		case FormatNetCDF:
			if d.GridFile == "" || len(d.ModelFiles) != len(d.Constituents) {
				t.Errorf("%s: netcdf model files and constituents misaligned", name)
			}
		case FormatGOT:
			if d.GridFile != "" {
				t.Errorf("%s: GOT models embed their grids", name)
			}
			if len(d.ModelFiles) != len(d.Constituents) {
				t.Errorf("%s: files and constituents misaligned", name)
			}
			if !d.RequiresDeltaTime {
				t.Errorf("%s: GOT models need dynamical time", name)
			}
			if d.Scale == 0 {
				t.Errorf("%s: GOT models store scaled values", name)
			}
		default:
			t.Errorf("%s: unknown format %q", name, d.Format)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("FES2014")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNames_Complete(t *testing.T) {
	want := []string{
		"AODTM-5", "AOTIM-5", "AOTIM-5-2018",
		"CATS0201", "CATS2008", "CATS2008_load",
		"GOT4.10", "GOT4.10_load", "GOT4.7", "GOT4.7_load", "GOT4.8", "GOT4.8_load",
		"TPXO7.2", "TPXO7.2_load", "TPXO8-atlas", "TPXO9-atlas", "TPXO9.1",
	}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("registry names mismatch (-want +got):\n%s", diff)
	}
}

func TestPaths(t *testing.T) {
	d, err := Lookup("CATS2008")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := filepath.Join("/data", "CATS2008", "grid_CATS2008a_opt")
	if got := d.GridPath("/data"); got != want {
		t.Errorf("GridPath: got %q, want %q", got, want)
	}
	want = filepath.Join("/data", "CATS2008", "hf.CATS2008.out")
	if got := d.ModelPath("/data"); got != want {
		t.Errorf("ModelPath: got %q, want %q", got, want)
	}
	if d.ModelPaths("/data") != nil {
		t.Error("ModelPaths should be nil for single-file layouts")
	}

	g, err := Lookup("GOT4.10")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	paths := g.ModelPaths("/data")
	if len(paths) != 10 {
		t.Fatalf("GOT4.10: %d model paths, want 10", len(paths))
	}
	want = filepath.Join("/data", "GOT4.10c", "grids_oceantide", "q1.d.gz")
	if paths[0] != want {
		t.Errorf("GOT4.10 first path: got %q, want %q", paths[0], want)
	}
	if g.GridPath("/data") != "" {
		t.Error("GridPath should be empty for GOT models")
	}
}

func TestScales(t *testing.T) {
	cases := map[string]float64{
		"TPXO9-atlas":  1.0 / 1000.0,
		"GOT4.7":       1.0 / 100.0,
		"GOT4.7_load":  1.0 / 1000.0,
		"GOT4.10":      1.0 / 100.0,
		"GOT4.10_load": 1.0 / 1000.0,
	}
	for name, scale := range cases {
		d, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if d.Scale != scale {
			t.Errorf("%s scale: got %v, want %v", name, d.Scale, scale)
		}
	}
}

func TestProjectedModelsTagged(t *testing.T) {
	for name, crs := range map[string]CRS{
		"CATS2008":     CRSCats2008,
		"AODTM-5":      CRSPSNorth,
		"AOTIM-5":      CRSPSNorth,
		"AOTIM-5-2018": CRSPSNorth,
		"TPXO9.1":      CRSGeographic,
	} {
		d, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if d.CRS != crs {
			t.Errorf("%s CRS: got %q, want %q", name, d.CRS, crs)
		}
	}
}
