package section

import (
	"encoding/json"
	"net/http"
)

type Input struct {
	ForceKN  float64 `json:"force_kn"`
	LengthMM float64 `json:"length_mm"`
	Mu       float64 `json:"mu"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.LengthMM < 0 {
		http.Error(w, "Calculation error: negative length", http.StatusBadRequest)
		return
	}
	res := NewSelector(nil, input.Mu).Select(input.ForceKN, input.LengthMM)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Catalog())
}
