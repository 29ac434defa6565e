package export

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"Canopy/internal/calc/canopy"
)

type Handler struct{}

func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "text/plain; charset=utf-8", "specification.txt", WriteText)
}

func (h *Handler) DXF(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "application/dxf", "truss.dxf", WriteDXF)
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "canopy.xlsx", WriteXLSX)
}

func (h *Handler) PNG(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "image/png", "truss.png", func(out io.Writer, res *canopy.Result) error {
		return WriteDrawing(out, res, "png")
	})
}

func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "image/svg+xml", "truss.svg", func(out io.Writer, res *canopy.Result) error {
		return WriteDrawing(out, res, "svg")
	})
}

// render buffers the output so a rendering failure still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, contentType, filename string, write func(io.Writer, *canopy.Result) error) {
	res, ok := canopy.Decode(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, res); err != nil {
		log.Printf("export %s: %v", filename, err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	w.Write(buf.Bytes())
}
