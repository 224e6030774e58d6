package dto

// UpdateLanguageRequest payload for setting the preferred UI language.
type UpdateLanguageRequest struct {
	Language string `json:"language"`
}
