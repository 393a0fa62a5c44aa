package services

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultAnalysisScore = 50

var (
	errNoJSONObject = errors.New("analysis: no json object in model output")
	trailingComma   = regexp.MustCompile(`,\s*([\]}])`)
)

// Analysis is the resume review returned to the client.
type Analysis struct {
	Score             int      `json:"score"`
	Strengths         []string `json:"strengths"`
	Suggestions       []string `json:"suggestions"`
	MissingSkills     []string `json:"missing_skills"`
	RecommendedSkills []string `json:"recommended_skills"`
	ExtractedSkills   []string `json:"extracted_skills"`
	Summary           string   `json:"summary"`
}

// fallbackAnalysis is served whenever the model output cannot be used.
func fallbackAnalysis(entitySkills []string) Analysis {
	skills := entitySkills
	if skills == nil {
		skills = []string{}
	}
	return Analysis{
		Score:             70,
		Strengths:         []string{"Strong academics", "Relevant projects"},
		Suggestions:       []string{"Add links & metrics"},
		MissingSkills:     []string{"Docker", "AWS"},
		RecommendedSkills: []string{"FastAPI", "Kubernetes"},
		ExtractedSkills:   skills,
		Summary:           "Promising resume; enhance with cloud/DevOps.",
	}
}

// ParseAnalysis recovers an Analysis from loosely formatted model output. stopReason
// is the provider's finish reason; a response cut off at the token limit right after
// a comma gets its object closed before parsing.
func ParseAnalysis(raw, stopReason string) (Analysis, error) {
	text := stripCodeFences(raw)

	if hitTokenLimit(stopReason) && strings.HasSuffix(text, ",") {
		text = strings.TrimRight(strings.TrimSuffix(text, ","), " \t\r\n") + "}"
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Analysis{}, errNoJSONObject
	}
	doc := trailingComma.ReplaceAllString(text[start:end+1], "$1")

	if !gjson.Valid(doc) {
		return Analysis{}, errors.New("analysis: model output is not valid json")
	}
	parsed := gjson.Parse(doc)

	return Analysis{
		Score:             clampScore(parsed.Get("score")),
		Strengths:         stringList(parsed.Get("strengths")),
		Suggestions:       stringList(parsed.Get("suggestions")),
		MissingSkills:     stringList(parsed.Get("missing_skills")),
		RecommendedSkills: stringList(parsed.Get("recommended_skills")),
		ExtractedSkills:   stringList(parsed.Get("extracted_skills")),
		Summary:           parsed.Get("summary").String(),
	}, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func hitTokenLimit(stopReason string) bool {
	r := strings.ToUpper(strings.ReplaceAll(stopReason, "_", ""))
	return strings.Contains(r, "MAXTOKENS")
}

// stringList returns the array elements as strings, or an empty list for non-arrays.
func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampScore(v gjson.Result) int {
	var score float64
	switch v.Type {
	case gjson.Number:
		score = v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return defaultAnalysisScore
		}
		score = f
	default:
		return defaultAnalysisScore
	}
	if math.IsNaN(score) {
		return defaultAnalysisScore
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
