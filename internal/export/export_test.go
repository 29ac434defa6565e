package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"Canopy/internal/calc/canopy"
	"Canopy/internal/calc/loads"
)

func result(t *testing.T) *canopy.Result {
	t.Helper()
	angle := 15.0
	res, err := canopy.Calculate(canopy.Config{
		Span: 6000, Rise: 900, ColumnSpacing: 3000, TrussSpacing: 1500,
		Region: loads.RegionIII, RoofAngle: &angle,
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, result(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"METAL SPECIFICATION",
		LengthNote,
		"Canopy 6000x900 mm, region III",
		"Snow load: 252.00 kg/m²",
		"Lower chord",
		"Column",
		"Total mass:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteDXF(t *testing.T) {
	res := result(t)
	var buf bytes.Buffer
	if err := WriteDXF(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ENTITIES", "LINE", LayerMembers, LayerColumns, LayerDimensions, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("dxf output missing %q", want)
		}
	}
	if got := strings.Count(out, "\nLINE"); got < len(res.Members) {
		t.Errorf("dxf has %d lines for %d members", got, len(res.Members))
	}
}

func TestWriteDXFWithoutTempDir(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))
	var buf bytes.Buffer
	if err := WriteDXF(&buf, result(t)); err != nil {
		t.Fatalf("WriteDXF with unusable TMPDIR: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(buf.String()), "EOF") {
		t.Errorf("dxf output truncated: %q", buf.String()[max(0, buf.Len()-40):])
	}
}

func TestWriteXLSX(t *testing.T) {
	res := result(t)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, res); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSpecification)
	if err != nil {
		t.Fatal(err)
	}
	// header, items, total
	if len(rows) != len(res.Specification)+2 {
		t.Errorf("%d specification rows for %d items", len(rows), len(res.Specification))
	}
	if rows[0][2] != "Profile" || rows[1][1] != res.Specification[0].Label {
		t.Errorf("unexpected rows %v", rows[:2])
	}

	rows, err = f.GetRows(SheetMembers)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(res.Members)+1 {
		t.Errorf("%d member rows for %d members", len(rows), len(res.Members))
	}
}

func TestWriteDrawing(t *testing.T) {
	res := result(t)

	var png bytes.Buffer
	if err := WriteDrawing(&png, res, "png"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("png output lacks the PNG signature")
	}

	var svg bytes.Buffer
	if err := WriteDrawing(&svg, res, "svg"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("svg output lacks an svg element")
	}

	if err := WriteDrawing(&svg, res, "bmp"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestHandlers(t *testing.T) {
	body := `{"span":6000,"rise":900,"column_spacing":3000,"truss_spacing":1500,"region":"III"}`
	h := &Handler{}
	for _, c := range []struct {
		name string
		fn   http.HandlerFunc
		ct   string
	}{
		{"txt", h.Text, "text/plain; charset=utf-8"},
		{"dxf", h.DXF, "application/dxf"},
		{"xlsx", h.XLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"png", h.PNG, "image/png"},
		{"svg", h.SVG, "image/svg+xml"},
	} {
		rec := httptest.NewRecorder()
		c.fn(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/"+c.name, strings.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d %s", c.name, rec.Code, rec.Body.String())
			continue
		}
		if got := rec.Header().Get("Content-Type"); got != c.ct {
			t.Errorf("%s: content type %q", c.name, got)
		}
		if rec.Body.Len() == 0 {
			t.Errorf("%s: empty body", c.name)
		}
	}

	rec := httptest.NewRecorder()
	h.Text(rec, httptest.NewRequest(http.MethodPost, "/tools/canopy/txt", strings.NewReader(`{"region":"III"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
