package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
)

var (
	ErrEmptySymbol     = errors.New("symbol is required")
	ErrFieldAlreadySet = errors.New("field already set")
)

// Field names one derived field of a RunRecord.
type Field string

const (
	FieldFinancialSummary   Field = "financial_summary"
	FieldFundamentalSummary Field = "fundamental_summary"
	FieldNewsSummary        Field = "news_summary"
	FieldConclusion         Field = "conclusion"
)

// RunRecord holds the ticker of one analysis run and the summaries produced for it.
// Each derived field is written once by the graph node that owns it.
type RunRecord struct {
	Symbol             string  `json:"symbol"`
	FinancialSummary   *string `json:"financial_summary"`
	FundamentalSummary *string `json:"fundamental_summary"`
	NewsSummary        *string `json:"news_summary"`
	Conclusion         *string `json:"conclusion"`
}

// NormalizeSymbol upper-cases and trims a ticker. No other validation is done.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", ErrEmptySymbol
	}
	return s, nil
}

func NewRunRecord(symbol string) (*RunRecord, error) {
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return &RunRecord{Symbol: s}, nil
}

func (r *RunRecord) slot(field Field) (**string, error) {
	switch field {
	case FieldFinancialSummary:
		return &r.FinancialSummary, nil
	case FieldFundamentalSummary:
		return &r.FundamentalSummary, nil
	case FieldNewsSummary:
		return &r.NewsSummary, nil
	case FieldConclusion:
		return &r.Conclusion, nil
	default:
		return nil, fmt.Errorf("unknown record field %q", field)
	}
}

// Set writes a derived field. A field can only be written once.
func (r *RunRecord) Set(field Field, text string) error {
	p, err := r.slot(field)
	if err != nil {
		return err
	}
	if *p != nil {
		return fmt.Errorf("%s: %w", field, ErrFieldAlreadySet)
	}
	*p = &text
	return nil
}

// Get returns the field value and whether it has been set.
func (r *RunRecord) Get(field Field) (string, bool) {
	p, err := r.slot(field)
	if err != nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Complete reports whether the conclusion has been written.
func (r *RunRecord) Complete() bool {
	return r.Conclusion != nil
}

// Clone returns a copy that shares no pointers with r.
func (r *RunRecord) Clone() *RunRecord {
	cp := &RunRecord{Symbol: r.Symbol}
	for _, f := range []Field{FieldFinancialSummary, FieldFundamentalSummary, FieldNewsSummary, FieldConclusion} {
		if v, ok := r.Get(f); ok {
			_ = cp.Set(f, v)
		}
	}
	return cp
}

// ConclusionInput composes the text block handed to the conclusion agent.
// Unset summaries are rendered as consts.MissingSummary.
func (r *RunRecord) ConclusionInput() string {
	text := func(f Field) string {
		if v, ok := r.Get(f); ok {
			return v
		}
		return consts.MissingSummary
	}
	return fmt.Sprintf("Financials: %s\nFundamentals: %s\nNews: %s\n",
		text(FieldFinancialSummary),
		text(FieldFundamentalSummary),
		text(FieldNewsSummary),
	)
}
