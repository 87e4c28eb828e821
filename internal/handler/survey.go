package handler

import (
	"net/http"

	"github.com/attunehq/attune/api/internal/model"
	"github.com/attunehq/attune/api/internal/service"
)

// SurveyHandler handles survey upload and retrieval endpoints
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// Upload handles POST /v1/surveys - store a survey export
func (h *SurveyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req model.UploadSurveyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	record, err := h.surveyService.Upload(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, record, map[string]string{
		"self":   "/v1/surveys/" + record.ID,
		"shared": "/v1/surveys/shared/" + record.ShareCode,
	})
}

// Get handles GET /v1/surveys/{surveyId} - retrieve a stored survey
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyId")
	if surveyID == "" {
		WriteError(w, model.NewBadRequestError("survey ID required"))
		return
	}

	record, err := h.surveyService.Get(r.Context(), surveyID, accessCode(r))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, record, map[string]string{
		"self": "/v1/surveys/" + surveyID,
	})
}

// GetShared handles GET /v1/surveys/shared/{shareCode} - retrieve by share code
func (h *SurveyHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("shareCode")
	if shareCode == "" {
		WriteError(w, model.NewBadRequestError("share code required"))
		return
	}

	record, err := h.surveyService.GetByShareCode(r.Context(), shareCode, accessCode(r))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, record, map[string]string{
		"self": "/v1/surveys/shared/" + shareCode,
	})
}

// Delete handles DELETE /v1/surveys/{surveyId} - remove a stored survey
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyId")
	if surveyID == "" {
		WriteError(w, model.NewBadRequestError("survey ID required"))
		return
	}

	if err := h.surveyService.Delete(r.Context(), surveyID, accessCode(r)); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// accessCode reads the survey access code from the X-Access-Code header,
// falling back to the access_code query parameter.
func accessCode(r *http.Request) string {
	if code := r.Header.Get("X-Access-Code"); code != "" {
		return code
	}
	return r.URL.Query().Get("access_code")
}
