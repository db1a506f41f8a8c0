package services

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
)

// QuestionAggregate is the per-question summary. The type-specific fields
// are pointers so that inapplicable or undefined values are omitted from
// the JSON body rather than rendered as zeroes.
type QuestionAggregate struct {
	QuestionID   uuid.UUID           `json:"question_id"`
	QuestionText string              `json:"question_text"`
	QuestionType models.QuestionType `json:"question_type"`

	// TotalResponses counts the answers matched to this question, which
	// ordinarily equals the survey-level total since submission enforces
	// full coverage.
	TotalResponses int `json:"total_responses"`

	TrueCount      *int     `json:"true_count,omitempty"`
	FalseCount     *int     `json:"false_count,omitempty"`
	TruePercentage *float64 `json:"true_percentage,omitempty"`

	AverageRank      *float64    `json:"average_rank,omitempty"`
	RankDistribution map[int]int `json:"rank_distribution,omitempty"`

	TextResponses []string `json:"text_responses,omitempty"`
}

type AggregateResult struct {
	SurveyID       uuid.UUID           `json:"survey_id"`
	TotalResponses int                 `json:"total_responses"`
	Questions      []QuestionAggregate `json:"questions"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildAggregate tallies every answer of every response into one summary
// per question, in question order. Questions nobody answered still get a
// zero-filled entry. Responses are walked in submitted_at ascending order
// so text answers come out in a deterministic sequence.
func BuildAggregate(survey models.Survey, questions []models.Question, responses []models.Response) AggregateResult {
	ordered := make([]models.Response, len(responses))
	copy(ordered, responses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
	})

	result := AggregateResult{
		SurveyID:       survey.ID,
		TotalResponses: len(responses),
		Questions:      make([]QuestionAggregate, 0, len(questions)),
	}

	for _, q := range questions {
		var matched []models.Answer
		for _, r := range ordered {
			for _, a := range r.Answers {
				if a.QuestionID == q.ID {
					matched = append(matched, a)
				}
			}
		}

		agg := QuestionAggregate{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			QuestionType:   q.Type,
			TotalResponses: len(matched),
		}

		switch q.Type {
		case models.QuestionTypeTrueFalse:
			trueCount, falseCount := 0, 0
			for _, a := range matched {
				if a.BoolValue == nil {
					continue
				}
				if *a.BoolValue {
					trueCount++
				} else {
					falseCount++
				}
			}
			agg.TrueCount = &trueCount
			agg.FalseCount = &falseCount
			if len(matched) > 0 {
				pct := round2(float64(trueCount) / float64(len(matched)) * 100)
				agg.TruePercentage = &pct
			}

		case models.QuestionTypeRank:
			var values []int
			for _, a := range matched {
				if a.RankValue != nil {
					values = append(values, *a.RankValue)
				}
			}
			if len(values) > 0 {
				sum := 0
				distribution := make(map[int]int)
				for _, v := range values {
					sum += v
					distribution[v]++
				}
				avg := round2(float64(sum) / float64(len(values)))
				agg.AverageRank = &avg
				agg.RankDistribution = distribution
			}

		case models.QuestionTypeText:
			for _, a := range matched {
				if a.TextValue != nil {
					agg.TextResponses = append(agg.TextResponses, *a.TextValue)
				}
			}
		}

		result.Questions = append(result.Questions, agg)
	}

	return result
}
