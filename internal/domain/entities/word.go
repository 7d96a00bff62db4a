package entities

// CustomWord maps a speech-recognition misreading to the intended term,
// applied when merging transcript fragments.
type CustomWord struct {
	Reading string `json:"reading"`
	Word    string `json:"word"`
}
