package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklens/internal/domain"
)

// analysisResponse is the JSON object the model is instructed to produce.
// Keys the model omits keep their zero defaults.
type analysisResponse struct {
	Columns           []string `json:"Columns"`
	TimeColumn        string   `json:"Time_Column"`
	DateColumn        string   `json:"Date_Column"`
	ActivitiesSummary string   `json:"Activities_Summary"`
}

// ExtractAnalysis pulls the analysis object out of raw generated text, which
// may carry commentary before and after the JSON. The slice from the first
// '{' to the last '}' is parsed; on any failure the all-defaults result is
// returned together with a diagnostic error the caller logs and swallows.
// Pure function: same input, same output.
func ExtractAnalysis(raw string) (domain.AnalysisResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return domain.AnalysisResult{}, fmt.Errorf("no JSON object found in response")
	}

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw[start:end+1])), &parsed); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("parsing analysis JSON: %w", err)
	}

	return domain.AnalysisResult{
		Columns:         parsed.Columns,
		TimeColumn:      parsed.TimeColumn,
		DateColumn:      parsed.DateColumn,
		ActivitySummary: parsed.ActivitiesSummary,
	}, nil
}
