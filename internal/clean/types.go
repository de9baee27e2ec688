package clean

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind classifies a cleaning category.
type ItemKind int

const (
	KindNone ItemKind = iota
	KindBrowser
	KindTemp
	KindSystem
	KindCustomPath
)

func (k ItemKind) String() string {
	switch k {
	case KindBrowser:
		return "BROWSER"
	case KindTemp:
		return "TEMP"
	case KindSystem:
		return "SYSTEM"
	case KindCustomPath:
		return "CUSTOM_PATH"
	default:
		return "NONE"
	}
}

// CleanOption is one toggleable target inside a category. Options are
// identified by ID; names repeat across categories.
type CleanOption struct {
	ID      uuid.UUID
	Name    string
	Enabled bool
}

func newOption(name string) CleanOption {
	return CleanOption{ID: uuid.New(), Name: name, Enabled: true}
}

// CleaningItem is a named category owning an ordered list of options.
type CleaningItem struct {
	Name    string
	Kind    ItemKind
	Icon    string
	Options []CleanOption
}

// NeedsCleaning reports whether at least one option is enabled.
func (it CleaningItem) NeedsCleaning() bool {
	for _, opt := range it.Options {
		if opt.Enabled {
			return true
		}
	}
	return false
}

func (it CleaningItem) clone() CleaningItem {
	it.Options = append([]CleanOption(nil), it.Options...)
	return it
}

// CleanResult is the outcome of one finished option.
type CleanResult struct {
	Category string
	Option   string
	Files    uint64
	Bytes    uint64
	Icon     string
}

// SummaryKind tells which kind of run produced a Summary.
type SummaryKind int

const (
	SummaryNone SummaryKind = iota
	SummaryAnalysis
	SummaryCleaning
)

func (k SummaryKind) String() string {
	switch k {
	case SummaryAnalysis:
		return "ANALYSIS"
	case SummaryCleaning:
		return "CLEANING"
	default:
		return "NONE"
	}
}

// Summary aggregates a completed run. Results are in completion order.
type Summary struct {
	Kind       SummaryKind
	Elapsed    time.Duration
	TotalFiles uint64
	TotalBytes uint64
	Results    []CleanResult
}

func (s Summary) clone() Summary {
	s.Results = append([]CleanResult(nil), s.Results...)
	return s
}

// State is the engine lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateAnalyzing
	StateAnalysisDone
	StateCleaning
	StateCleaningDone
)

func (s State) String() string {
	switch s {
	case StateAnalyzing:
		return "ANALYZING"
	case StateAnalysisDone:
		return "ANALYSIS_DONE"
	case StateCleaning:
		return "CLEANING"
	case StateCleaningDone:
		return "CLEANING_DONE"
	default:
		return "IDLE"
	}
}

// Running reports whether a run is in flight.
func (s State) Running() bool {
	return s == StateAnalyzing || s == StateCleaning
}

// Done reports whether a finished run's summary is waiting to be consumed.
func (s State) Done() bool {
	return s == StateAnalysisDone || s == StateCleaningDone
}
