package listing

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Mode is the response mode of a listing request.
type Mode int

const (
	// ModeFullPage renders the complete page with all of its context.
	ModeFullPage Mode = iota
	// ModePartialData answers with an Envelope for incremental loading.
	ModePartialData
)

func (m Mode) String() string {
	if m == ModePartialData {
		return "partial"
	}
	return "full"
}

// DetectMode returns ModePartialData when every required parameter is present
// in the query, regardless of its value, and ModeFullPage otherwise.
func DetectMode(query url.Values, required ...string) Mode {
	for _, key := range required {
		if !query.Has(key) {
			return ModeFullPage
		}
	}
	return ModePartialData
}

// EnvelopeData carries the pagination state of a partial-data response.
type EnvelopeData struct {
	ResultsLeft int `json:"results_left"`
}

// Envelope is the JSON body of a partial-data response.
type Envelope struct {
	Status   int          `json:"status"`
	Data     EnvelopeData `json:"data"`
	Rendered string       `json:"rendered"`
}

// Assemble renders every item in order and joins the fragments with newlines.
// The first render failure aborts the assembly.
func Assemble[T any](items []T, resultsLeft int, render func(T) (string, error)) (Envelope, error) {
	fragments := make([]string, 0, len(items))
	for i, item := range items {
		fragment, err := render(item)
		if err != nil {
			return Envelope{}, fmt.Errorf("failed to render item %d: %w", i, err)
		}
		fragments = append(fragments, fragment)
	}

	return Envelope{
		Status:   http.StatusOK,
		Data:     EnvelopeData{ResultsLeft: resultsLeft},
		Rendered: strings.Join(fragments, "\n"),
	}, nil
}

// Page windows items and assembles the envelope for the window.
func Page[T any](items []T, offset, limit int, render func(T) (string, error)) (Envelope, error) {
	slice, resultsLeft := Window(items, offset, limit)
	return Assemble(slice, resultsLeft, render)
}
