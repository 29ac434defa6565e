package canopy

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"Canopy/internal/calc/loads"
	"Canopy/internal/calc/truss"
)

func scenario() Config {
	angle := 15.0
	return Config{
		Span:          6000,
		Rise:          900,
		ColumnSpacing: 3000,
		TrussSpacing:  1500,
		Region:        loads.RegionIII,
		RoofAngle:     &angle,
	}
}

func TestCalculateScenario(t *testing.T) {
	res, err := Calculate(scenario())
	if err != nil {
		t.Fatal(err)
	}
	if res.Loads.SnowKgM2 != 252.00 || res.Loads.WindKgM2 != 30 {
		t.Errorf("loads = %+v", res.Loads)
	}
	if res.Panels < 4 {
		t.Errorf("panels = %d", res.Panels)
	}
	if !res.Complete {
		t.Fatalf("incomplete: %v", res.Warnings)
	}

	wantTotal := (252.0 + 30) * 1.5 * 9.81 / 1000 * 6
	if math.Abs(res.Loads.TotalLoadKN-wantTotal) > 1e-9 {
		t.Errorf("total load = %v, want %v", res.Loads.TotalLoadKN, wantTotal)
	}
	if math.Abs(res.Reactions[0]+res.Reactions[1]-wantTotal) > 1e-9 {
		t.Errorf("reactions %v do not balance %v", res.Reactions, wantTotal)
	}

	for _, m := range res.Members {
		if !m.Solved {
			t.Errorf("member %d unsolved", m.ID)
		}
		if m.Profile.Area < m.RequiredArea {
			t.Errorf("member %d: %s area %v < required %v", m.ID, m.Profile.Name, m.Profile.Area, m.RequiredArea)
		}
		ridge := m.Category == truss.WebPost && res.Nodes[m.Start].X == 3000
		if !ridge && math.Abs(m.ForceKN) < 1e-6 {
			t.Errorf("member %d (%s) has zero force", m.ID, m.Category)
		}
		if m.Weld.SizeMM < 3 || m.Weld.Utilization > 1 {
			t.Errorf("member %d weld %+v", m.ID, m.Weld)
		}
	}
	if res.Oversized {
		t.Errorf("scenario should not need fallbacks: %v", res.Warnings)
	}
}

func TestCalculateColumnsAndSpecification(t *testing.T) {
	res, err := Calculate(scenario())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Columns) != 2 {
		t.Fatalf("%d columns", len(res.Columns))
	}
	for i, c := range res.Columns {
		if want := res.Reactions[i] * 2; math.Abs(c.LoadKN-want) > 1e-9 {
			t.Errorf("column %d load %v, want %v", i, c.LoadKN, want)
		}
		if !c.Check.OK {
			t.Errorf("column %d fails: %+v", i, c.Check)
		}
	}
	if res.Columns[1].X != 6000 {
		t.Errorf("right column at %v", res.Columns[1].X)
	}

	counts := map[string]int{}
	for _, it := range res.Specification {
		counts[it.Label] += it.Count
	}
	if counts[ColumnLabel] != 2 {
		t.Errorf("specification lists %d columns", counts[ColumnLabel])
	}
	if got := counts[string(truss.LowerChord)] + counts[string(truss.UpperChord)] +
		counts[string(truss.WebPost)] + counts[string(truss.WebDiagonal)]; got != len(res.Members) {
		t.Errorf("specification covers %d members of %d", got, len(res.Members))
	}
	if res.TotalMassKg <= 0 {
		t.Errorf("total mass %v", res.TotalMassKg)
	}
}

func TestCalculateDeflectionAndAnchors(t *testing.T) {
	res, err := Calculate(scenario())
	if err != nil {
		t.Fatal(err)
	}
	d := res.Deflection
	if d == nil {
		t.Fatal("no deflection check on a complete truss")
	}
	if d.DeflectionMM <= 0 || d.LimitMM != 24 || d.OK != (d.DeflectionMM <= d.LimitMM) {
		t.Errorf("deflection %+v", d)
	}

	// 30 kg/m² over half the span times the column spacing
	wantUplift := 30 * 3.0 * 3.0 * 9.81 / 1000
	if math.Abs(res.Loads.UpliftKN-wantUplift) > 1e-9 {
		t.Errorf("uplift = %v, want %v", res.Loads.UpliftKN, wantUplift)
	}
	if len(res.Anchors) != len(res.Columns) {
		t.Fatalf("%d anchor groups for %d columns", len(res.Anchors), len(res.Columns))
	}
	for i, a := range res.Anchors {
		if a.DiameterMM != 16 || !a.Check.OK || a.UpliftKN != res.Loads.UpliftKN {
			t.Errorf("anchors %d: %+v", i, a)
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	a, err := Calculate(scenario())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(scenario())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs on the same config differ")
	}
}

func TestCalculateDerivesRoofAngle(t *testing.T) {
	cfg := scenario()
	cfg.RoofAngle = nil
	cfg.Rise = 3000
	res, err := Calculate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// 45 deg roof: μ = 15/35.
	want := math.Round(180*15.0/35*1.4*100) / 100
	if math.Abs(res.Loads.RoofAngleDeg-45) > 1e-9 || res.Loads.SnowKgM2 != want {
		t.Errorf("loads = %+v, want snow %v", res.Loads, want)
	}
}

func TestCalculateRejects(t *testing.T) {
	cfg := scenario()
	cfg.Region = "XI"
	if _, err := Calculate(cfg); !errors.Is(err, loads.ErrInvalidRegion) {
		t.Errorf("error = %v, want ErrInvalidRegion", err)
	}
	cfg = scenario()
	cfg.TrussSpacing = 0
	if _, err := Calculate(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestCalculateOversized(t *testing.T) {
	cfg := Config{Span: 30000, Rise: 600, ColumnSpacing: 6000, TrussSpacing: 6000, Region: loads.RegionVIII}
	res, err := Calculate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Oversized || len(res.Warnings) == 0 {
		t.Fatalf("expected fallback warnings, got oversized=%v %v", res.Oversized, res.Warnings)
	}
	fallbacks := 0
	for _, m := range res.Members {
		if m.Fallback {
			fallbacks++
			if m.Profile.Name != "140x140x8" {
				t.Errorf("fallback profile %s", m.Profile.Name)
			}
		}
	}
	if fallbacks == 0 {
		t.Error("no member flagged as fallback")
	}
}

func TestCalculateBatch(t *testing.T) {
	bad := scenario()
	bad.Region = "0"
	cfgs := []Config{scenario(), bad, scenario()}
	cfgs[2].Span = 9000

	items := CalculateBatch(context.Background(), cfgs, 2)
	if len(items) != 3 {
		t.Fatalf("%d items", len(items))
	}
	for i, it := range items {
		if it.Index != i {
			t.Errorf("item %d has index %d", i, it.Index)
		}
	}
	if items[0].Result == nil || items[2].Result == nil || items[2].Result.Config.Span != 9000 {
		t.Errorf("results out of order: %+v", items)
	}
	if items[1].Error == "" || items[1].Result != nil {
		t.Errorf("bad config item %+v", items[1])
	}
	if Failed(items) != 1 {
		t.Errorf("Failed = %d", Failed(items))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items = CalculateBatch(ctx, cfgs, 1)
	if Failed(items) != len(cfgs) {
		t.Errorf("cancelled batch produced results: %+v", items)
	}
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	body := `{"span":6000,"rise":900,"column_spacing":3000,"truss_spacing":1500,"region":"III","roof_angle":15}`
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/calc", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"snow_kg_m2":252`) || !strings.Contains(rec.Body.String(), `"complete":true`) {
		t.Errorf("body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/calc", strings.NewReader(`{"span":6000,"region":"Q"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerBatch(t *testing.T) {
	h := &Handler{Workers: 2}
	body := `{"items":[{"span":6000,"rise":900,"column_spacing":3000,"truss_spacing":1500,"region":"III"},{"span":0,"region":"I"}]}`
	rec := httptest.NewRecorder()
	h.Batch(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/batch", strings.NewReader(body)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"failed":1`) {
		t.Errorf("status %d body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Batch(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/batch", strings.NewReader(`{"items":[]}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d", rec.Code)
	}
}
