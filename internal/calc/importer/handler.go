package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"Canopy/internal/calc/canopy"
)

// maxUpload bounds the multipart form kept in memory.
const maxUpload = 8 << 20

type Handler struct {
	Workers int
}

type ImportResult struct {
	Count    int                `json:"count"`
	Failed   int                `json:"failed"`
	Results  []canopy.BatchItem `json:"results"`
	Rejected []RowError         `json:"rejected,omitempty"`
}

func (h *Handler) Canopy(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, rejected, err := Read(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(rows) > canopy.MaxBatch {
		http.Error(w, fmt.Sprintf("Invalid file: %d rows, at most %d", len(rows), canopy.MaxBatch), http.StatusBadRequest)
		return
	}

	items := canopy.CalculateBatch(r.Context(), Configs(rows), h.Workers)
	for i := range items {
		items[i].Row = rows[i].Row
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{
		Count:    len(items),
		Failed:   canopy.Failed(items),
		Results:  items,
		Rejected: rejected,
	})
}
