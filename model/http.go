package model

// KeySlice is the JSON view of one key's slice geometry, served so external
// preview renderers can draw per-slice overlays.
type KeySlice struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	XStart int    `json:"x_start"`
	XEnd   int    `json:"x_end"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
