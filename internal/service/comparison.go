package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/attunehq/attune/api/internal/model"
)

// ComparisonService orchestrates comparisons of survey pairs
type ComparisonService struct {
	surveys *SurveyService
}

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	Surveys *SurveyService
}

// NewComparisonService creates a new comparison service
func NewComparisonService(cfg ComparisonServiceConfig) *ComparisonService {
	return &ComparisonService{
		surveys: cfg.Surveys,
	}
}

// CompareStored compares two stored surveys, enforcing the access code of
// each. An empty category breakdown in the result means the surveys share
// no categories; that is a valid outcome, not an error.
func (s *ComparisonService) CompareStored(ctx context.Context, selfID, partnerID, selfCode, partnerCode string) (*model.ComparisonSummary, error) {
	selfRecord, err := s.surveys.Get(ctx, selfID, selfCode)
	if err != nil {
		return nil, fmt.Errorf("self survey: %w", err)
	}
	partnerRecord, err := s.surveys.Get(ctx, partnerID, partnerCode)
	if err != nil {
		return nil, fmt.Errorf("partner survey: %w", err)
	}
	return summarize(selfRecord.Categories, partnerRecord.Categories), nil
}

// CompareRaw normalizes and compares two raw exports without persisting
// either side.
func (s *ComparisonService) CompareRaw(selfRaw, partnerRaw json.RawMessage) (*model.ComparisonSummary, error) {
	self := normalizeRaw(selfRaw)
	if self == nil {
		return nil, fmt.Errorf("self survey: %w", ErrEmptySurvey)
	}
	partner := normalizeRaw(partnerRaw)
	if partner == nil {
		return nil, fmt.Errorf("partner survey: %w", ErrEmptySurvey)
	}
	return summarize(self, partner), nil
}

func summarize(self, partner model.Survey) *model.ComparisonSummary {
	result := Compare(self, partner)
	return &model.ComparisonSummary{
		Result:           result,
		YourIntensity:    CategoryIntensity(self),
		PartnerIntensity: CategoryIntensity(partner),
		StrongMatchCount: StrongMatchCount(result.KinkBreakdown),
	}
}
