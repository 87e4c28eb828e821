package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/attunehq/attune/api/internal/database"
	"github.com/attunehq/attune/api/internal/model"
)

// SurveyRepository handles stored survey data access
type SurveyRepository struct {
	db database.Database
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(db database.Database) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Create persists a normalized survey record
func (r *SurveyRepository) Create(ctx context.Context, record *model.SurveyRecord) error {
	query := `
		CREATE survey CONTENT {
			label: $label,
			categories: $categories,
			share_code: $share_code,
			access_code_hash: $access_code_hash,
			protected: $protected,
			created_on: time::now()
		}
	`

	categories, err := categoriesToVars(record.Categories)
	if err != nil {
		return err
	}

	vars := map[string]interface{}{
		"label":            record.Label,
		"categories":       categories,
		"share_code":       record.ShareCode,
		"access_code_hash": record.AccessCodeHash,
		"protected":        record.Protected,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := parseSurveyResult(result)
	if err != nil {
		return err
	}

	record.ID = created.ID
	record.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a stored survey by its record ID. Returns nil when the
// record does not exist.
func (r *SurveyRepository) GetByID(ctx context.Context, id string) (*model.SurveyRecord, error) {
	// Direct record access - more efficient than WHERE id =
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, err := parseSurveyResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetByShareCode retrieves a stored survey by its share code. Returns nil
// when no survey carries the code.
func (r *SurveyRepository) GetByShareCode(ctx context.Context, code string) (*model.SurveyRecord, error) {
	query := `SELECT * FROM survey WHERE share_code = $share_code LIMIT 1`
	vars := map[string]interface{}{"share_code": code}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, err := parseSurveyResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a stored survey
func (r *SurveyRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// categoriesToVars converts the category map to plain maps for the query
// variable encoder.
func categoriesToVars(categories model.Survey) (map[string]interface{}, error) {
	data, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseSurveyResult(result interface{}) (*model.SurveyRecord, error) {
	// Handle nil result
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Navigate through SurrealDB response structure
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}
	if resp, ok := result.(map[string]interface{}); ok {
		if resultData, ok := resp["result"].([]interface{}); ok {
			if len(resultData) == 0 {
				return nil, database.ErrNotFound
			}
			result = resultData[0]
		}
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	record := &model.SurveyRecord{
		Label:          getString(data, "label"),
		ShareCode:      getString(data, "share_code"),
		AccessCodeHash: getString(data, "access_code_hash"),
		Protected:      getBool(data, "protected"),
	}

	// Handle SurrealDB's complex ID format
	if id, ok := data["id"]; ok {
		record.ID = convertSurrealID(id)
	}
	if t := getTime(data, "created_on"); t != nil {
		record.CreatedOn = *t
	}

	if raw, ok := data["categories"]; ok && raw != nil {
		categories, err := parseSurveyCategories(raw)
		if err != nil {
			return nil, err
		}
		record.Categories = categories
	}

	return record, nil
}

// parseSurveyCategories decodes the stored category map back into the model
// type via a JSON round trip, matching how it was written.
func parseSurveyCategories(raw interface{}) (model.Survey, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var categories model.Survey
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
