package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/attunehq/attune/api/internal/model"
)

// SurveyRepository defines the interface for survey storage
type SurveyRepository interface {
	Create(ctx context.Context, record *model.SurveyRecord) error
	GetByID(ctx context.Context, id string) (*model.SurveyRecord, error)
	GetByShareCode(ctx context.Context, code string) (*model.SurveyRecord, error)
	Delete(ctx context.Context, id string) error
}

// SurveyService handles survey upload, retrieval, and deletion
type SurveyService struct {
	repo SurveyRepository
}

// SurveyServiceConfig holds configuration for the survey service
type SurveyServiceConfig struct {
	Repo SurveyRepository
}

// NewSurveyService creates a new survey service
func NewSurveyService(cfg SurveyServiceConfig) *SurveyService {
	return &SurveyService{
		repo: cfg.Repo,
	}
}

// Upload normalizes a raw survey export and stores it. An optional access
// code restricts later retrieval; only its bcrypt hash is persisted.
func (s *SurveyService) Upload(ctx context.Context, req model.UploadSurveyRequest) (*model.SurveyRecord, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = model.DefaultLabel
	}
	if len(label) > model.MaxLabelLength {
		return nil, ErrLabelTooLong
	}

	normalized := normalizeRaw(req.Survey)
	if normalized == nil {
		return nil, ErrEmptySurvey
	}

	record := &model.SurveyRecord{
		Label:      label,
		Categories: normalized,
		ShareCode:  uuid.New().String(),
		CreatedOn:  time.Now().UTC(),
	}

	if req.AccessCode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.AccessCode), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		record.AccessCodeHash = string(hash)
		record.Protected = true
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves a stored survey, enforcing its access code when one is set.
func (s *SurveyService) Get(ctx context.Context, id, accessCode string) (*model.SurveyRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrSurveyNotFound
	}
	if err := s.authorize(record, accessCode); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByShareCode retrieves a stored survey by its share code.
func (s *SurveyService) GetByShareCode(ctx context.Context, code, accessCode string) (*model.SurveyRecord, error) {
	record, err := s.repo.GetByShareCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrSurveyNotFound
	}
	if err := s.authorize(record, accessCode); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a stored survey, enforcing its access code when one is set.
func (s *SurveyService) Delete(ctx context.Context, id, accessCode string) error {
	if _, err := s.Get(ctx, id, accessCode); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *SurveyService) authorize(record *model.SurveyRecord, accessCode string) error {
	if record.AccessCodeHash == "" {
		return nil
	}
	if accessCode == "" {
		return ErrAccessCodeRequired
	}
	if bcrypt.CompareHashAndPassword([]byte(record.AccessCodeHash), []byte(accessCode)) != nil {
		return ErrAccessCodeInvalid
	}
	return nil
}
