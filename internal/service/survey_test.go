package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/attunehq/attune/api/internal/model"
)

// ============================================================================
// Mock Repository
// ============================================================================

type mockSurveyRepo struct {
	createFunc         func(ctx context.Context, record *model.SurveyRecord) error
	getByIDFunc        func(ctx context.Context, id string) (*model.SurveyRecord, error)
	getByShareCodeFunc func(ctx context.Context, code string) (*model.SurveyRecord, error)
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockSurveyRepo) Create(ctx context.Context, record *model.SurveyRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = "survey:1"
	return nil
}

func (m *mockSurveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyRecord, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSurveyRepo) GetByShareCode(ctx context.Context, code string) (*model.SurveyRecord, error) {
	if m.getByShareCodeFunc != nil {
		return m.getByShareCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockSurveyRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestSurveyService(repo SurveyRepository) *SurveyService {
	return NewSurveyService(SurveyServiceConfig{Repo: repo})
}

func validExport() json.RawMessage {
	return json.RawMessage(`{"Rope": [{"name": "Shibari", "rating": 5}]}`)
}

func hashCode(t *testing.T, code string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash access code: %v", err)
	}
	return string(hash)
}

// ============================================================================
// Upload Tests
// ============================================================================

func TestUpload_NormalizesAndStores(t *testing.T) {
	t.Parallel()
	var stored *model.SurveyRecord
	repo := &mockSurveyRepo{
		createFunc: func(ctx context.Context, record *model.SurveyRecord) error {
			record.ID = "survey:abc"
			stored = record
			return nil
		},
	}
	svc := newTestSurveyService(repo)

	record, err := svc.Upload(context.Background(), model.UploadSurveyRequest{
		Label:  "  weekend survey  ",
		Survey: validExport(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Label != "weekend survey" {
		t.Errorf("expected trimmed label, got %q", record.Label)
	}
	if record.ShareCode == "" {
		t.Error("expected a generated share code")
	}
	if record.Protected || record.AccessCodeHash != "" {
		t.Error("survey without access code must not be protected")
	}
	if stored == nil || stored.Categories["Rope"] == nil {
		t.Errorf("expected normalized categories persisted, got %+v", stored)
	}
}

func TestUpload_EmptyLabel_Defaulted(t *testing.T) {
	t.Parallel()
	svc := newTestSurveyService(&mockSurveyRepo{})

	record, err := svc.Upload(context.Background(), model.UploadSurveyRequest{
		Survey: validExport(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Label != model.DefaultLabel {
		t.Errorf("expected default label, got %q", record.Label)
	}
}

func TestUpload_LabelTooLong(t *testing.T) {
	t.Parallel()
	svc := newTestSurveyService(&mockSurveyRepo{})

	long := make([]byte, model.MaxLabelLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Upload(context.Background(), model.UploadSurveyRequest{
		Label:  string(long),
		Survey: validExport(),
	})
	if !errors.Is(err, ErrLabelTooLong) {
		t.Errorf("expected ErrLabelTooLong, got %v", err)
	}
}

func TestUpload_EmptySurvey_Rejected(t *testing.T) {
	t.Parallel()
	created := false
	repo := &mockSurveyRepo{
		createFunc: func(ctx context.Context, record *model.SurveyRecord) error {
			created = true
			return nil
		},
	}
	svc := newTestSurveyService(repo)

	for _, raw := range []string{`{}`, `null`, `{"Cat": []}`} {
		_, err := svc.Upload(context.Background(), model.UploadSurveyRequest{
			Survey: json.RawMessage(raw),
		})
		if !errors.Is(err, ErrEmptySurvey) {
			t.Errorf("input %s: expected ErrEmptySurvey, got %v", raw, err)
		}
	}
	if created {
		t.Error("empty survey must never reach the repository")
	}
}

func TestUpload_AccessCode_StoredAsHash(t *testing.T) {
	t.Parallel()
	svc := newTestSurveyService(&mockSurveyRepo{})

	record, err := svc.Upload(context.Background(), model.UploadSurveyRequest{
		Survey:     validExport(),
		AccessCode: "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !record.Protected {
		t.Error("expected record marked protected")
	}
	if record.AccessCodeHash == "" || record.AccessCodeHash == "hunter2" {
		t.Error("access code must be stored hashed, never verbatim")
	}
	if bcrypt.CompareHashAndPassword([]byte(record.AccessCodeHash), []byte("hunter2")) != nil {
		t.Error("stored hash does not verify against the original code")
	}
}

func TestUpload_RepositoryError_Propagated(t *testing.T) {
	t.Parallel()
	repoErr := errors.New("connection reset")
	repo := &mockSurveyRepo{
		createFunc: func(ctx context.Context, record *model.SurveyRecord) error {
			return repoErr
		},
	}
	svc := newTestSurveyService(repo)

	_, err := svc.Upload(context.Background(), model.UploadSurveyRequest{Survey: validExport()})
	if !errors.Is(err, repoErr) {
		t.Errorf("expected repository error, got %v", err)
	}
}

// ============================================================================
// Get Tests
// ============================================================================

func TestGet_NotFound(t *testing.T) {
	t.Parallel()
	svc := newTestSurveyService(&mockSurveyRepo{})

	_, err := svc.Get(context.Background(), "survey:missing", "")
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("expected ErrSurveyNotFound, got %v", err)
	}
}

func TestGet_Unprotected_NoCodeNeeded(t *testing.T) {
	t.Parallel()
	repo := &mockSurveyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.SurveyRecord, error) {
			return &model.SurveyRecord{ID: id, Label: "open"}, nil
		},
	}
	svc := newTestSurveyService(repo)

	record, err := svc.Get(context.Background(), "survey:1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Label != "open" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestGet_Protected_AccessCodeEnforced(t *testing.T) {
	t.Parallel()
	hash := hashCode(t, "secret")
	repo := &mockSurveyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.SurveyRecord, error) {
			return &model.SurveyRecord{ID: id, AccessCodeHash: hash, Protected: true}, nil
		},
	}
	svc := newTestSurveyService(repo)

	if _, err := svc.Get(context.Background(), "survey:1", ""); !errors.Is(err, ErrAccessCodeRequired) {
		t.Errorf("missing code: expected ErrAccessCodeRequired, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "survey:1", "wrong"); !errors.Is(err, ErrAccessCodeInvalid) {
		t.Errorf("wrong code: expected ErrAccessCodeInvalid, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "survey:1", "secret"); err != nil {
		t.Errorf("correct code: unexpected error %v", err)
	}
}

func TestGetByShareCode_NotFound(t *testing.T) {
	t.Parallel()
	svc := newTestSurveyService(&mockSurveyRepo{})

	_, err := svc.GetByShareCode(context.Background(), "nope", "")
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("expected ErrSurveyNotFound, got %v", err)
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestDelete_RequiresAccessCode(t *testing.T) {
	t.Parallel()
	hash := hashCode(t, "secret")
	deleted := false
	repo := &mockSurveyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.SurveyRecord, error) {
			return &model.SurveyRecord{ID: id, AccessCodeHash: hash, Protected: true}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestSurveyService(repo)

	if err := svc.Delete(context.Background(), "survey:1", "wrong"); !errors.Is(err, ErrAccessCodeInvalid) {
		t.Errorf("expected ErrAccessCodeInvalid, got %v", err)
	}
	if deleted {
		t.Fatal("delete must not run with an invalid access code")
	}

	if err := svc.Delete(context.Background(), "survey:1", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected repository delete to run")
	}
}

// ============================================================================
// Comparison Service Tests
// ============================================================================

func storedRecord(id string, raw string) *model.SurveyRecord {
	return &model.SurveyRecord{
		ID:         id,
		Label:      "stored",
		Categories: normalizeRaw(json.RawMessage(raw)),
	}
}

func TestCompareStored_EndToEnd(t *testing.T) {
	t.Parallel()
	repo := &mockSurveyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.SurveyRecord, error) {
			switch id {
			case "survey:a":
				return storedRecord(id, `{"Rope": {"giving": [{"name": "Shibari", "rating": 5}]}}`), nil
			case "survey:b":
				return storedRecord(id, `{"Rope": {"receiving": [{"name": "Shibari", "rating": 4}]}}`), nil
			}
			return nil, nil
		},
	}
	svc := NewComparisonService(ComparisonServiceConfig{
		Surveys: newTestSurveyService(repo),
	})

	summary, err := svc.CompareStored(context.Background(), "survey:a", "survey:b", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Result.CompatibilityScore != 100 {
		t.Errorf("expected compatibility 100, got %d", summary.Result.CompatibilityScore)
	}
	if summary.StrongMatchCount != 1 {
		t.Errorf("expected one strong match, got %d", summary.StrongMatchCount)
	}
	if summary.YourIntensity["Rope"] == nil || *summary.YourIntensity["Rope"] != 100 {
		t.Errorf("unexpected self intensity: %v", summary.YourIntensity)
	}
}

func TestCompareStored_MissingPartner_WrapsNotFound(t *testing.T) {
	t.Parallel()
	repo := &mockSurveyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.SurveyRecord, error) {
			if id == "survey:a" {
				return storedRecord(id, `{"Rope": [{"name": "A", "rating": 3}]}`), nil
			}
			return nil, nil
		},
	}
	svc := NewComparisonService(ComparisonServiceConfig{
		Surveys: newTestSurveyService(repo),
	})

	_, err := svc.CompareStored(context.Background(), "survey:a", "survey:missing", "", "")
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("expected wrapped ErrSurveyNotFound, got %v", err)
	}
}

func TestCompareRaw_EmptySides_Rejected(t *testing.T) {
	t.Parallel()
	svc := NewComparisonService(ComparisonServiceConfig{
		Surveys: newTestSurveyService(&mockSurveyRepo{}),
	})

	_, err := svc.CompareRaw(json.RawMessage(`{}`), validExport())
	if !errors.Is(err, ErrEmptySurvey) {
		t.Errorf("empty self: expected ErrEmptySurvey, got %v", err)
	}

	_, err = svc.CompareRaw(validExport(), json.RawMessage(`[]`))
	if !errors.Is(err, ErrEmptySurvey) {
		t.Errorf("empty partner: expected ErrEmptySurvey, got %v", err)
	}
}

func TestCompareRaw_NoSharedCategories_IsValid(t *testing.T) {
	t.Parallel()
	svc := NewComparisonService(ComparisonServiceConfig{
		Surveys: newTestSurveyService(&mockSurveyRepo{}),
	})

	summary, err := svc.CompareRaw(
		json.RawMessage(`{"Rope": [{"name": "A", "rating": 5}]}`),
		json.RawMessage(`{"Impact": [{"name": "B", "rating": 5}]}`),
	)
	if err != nil {
		t.Fatalf("disjoint surveys must compare cleanly, got %v", err)
	}
	if len(summary.Result.CategoryBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", summary.Result.CategoryBreakdown)
	}
}
