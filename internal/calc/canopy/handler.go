package canopy

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Handler struct {
	// Workers bounds batch concurrency; zero means one per CPU.
	Workers int
}

type BatchInput struct {
	Items []Config `json:"items"`
}

type BatchResult struct {
	Count   int         `json:"count"`
	Failed  int         `json:"failed"`
	Results []BatchItem `json:"results"`
}

// MaxBatch caps the number of configurations accepted in one request.
const MaxBatch = 500

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	res, ok := Decode(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var input BatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 || len(input.Items) > MaxBatch {
		http.Error(w, fmt.Sprintf("Calculation error: batch needs 1..%d items", MaxBatch), http.StatusBadRequest)
		return
	}
	items := CalculateBatch(r.Context(), input.Items, h.Workers)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BatchResult{Count: len(items), Failed: Failed(items), Results: items})
}

// Decode reads a Config from the request body and calculates it, writing a
// 400 response on failure. Export handlers share it.
func Decode(w http.ResponseWriter, r *http.Request) (*Result, bool) {
	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return nil, false
	}
	res, err := Calculate(cfg)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return res, true
}
