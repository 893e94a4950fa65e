package types

import (
	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

// These types are shared between the daemon and client packages.

// CategoryInfo describes one category of the catalog.
type CategoryInfo struct {
	Name        catalog.Category `json:"name" yaml:"name"`
	Icon        string           `json:"icon" yaml:"icon"`
	Conversions []string         `json:"conversions" yaml:"conversions"`
}

// ConvertRequest asks the daemon to run a conversion. When Session is set,
// History and Favorite record the resulting entry in that session.
type ConvertRequest struct {
	// Category restricts the lookup to one category's option set.
	Category   string   `json:"category,omitempty"`
	Conversion string   `json:"conversion"`
	Value      *float64 `json:"value"`
	Session    string   `json:"session,omitempty"`
	History    bool     `json:"history,omitempty"`
	Favorite   bool     `json:"favorite,omitempty"`
}

type ConvertResponse struct {
	catalog.Result `yaml:",inline"`
	Entry          string `json:"entry" yaml:"entry"`
	// Notice is the outcome of adding the entry to favorites, if requested.
	Notice *ledger.Notice `json:"notice,omitempty" yaml:"notice,omitempty"`
}

type EntryRequest struct {
	Entry string `json:"entry"`
}

type FeedbackRequest struct {
	Text string `json:"text"`
}

type HistoryResponse struct {
	Entries []string `json:"entries"`
}

type ImportResponse struct {
	Count int `json:"count"`
}

type ThemeResponse struct {
	Theme ledger.Theme `json:"theme"`
}

type ReferenceResponse struct {
	Category catalog.Category `json:"category"`
	Lines    []string         `json:"lines"`
}
