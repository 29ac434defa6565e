package column

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

// SizeInput asks for the lightest catalog column carrying LoadKN.
type SizeInput struct {
	HeightMM float64 `json:"height_mm"`
	LoadKN   float64 `json:"load_kn"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

// Size picks and checks a column profile; a zero height uses DefaultHeightMM.
func (h *Handler) Size(w http.ResponseWriter, r *http.Request) {
	var input SizeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.HeightMM < 0 || input.LoadKN < 0 {
		http.Error(w, "Calculation error: height and load must not be negative", http.StatusBadRequest)
		return
	}
	d, err := Size(0, input.HeightMM, input.LoadKN)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, d)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
