package handler

import (
	"net/http"

	"github.com/attunehq/attune/api/internal/model"
	"github.com/attunehq/attune/api/internal/service"
)

// ComparisonHandler handles survey comparison endpoints
type ComparisonHandler struct {
	comparisonService *service.ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisonService *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

// CompareStored handles GET /v1/surveys/{surveyId}/compare/{partnerId} -
// compare two stored surveys
func (h *ComparisonHandler) CompareStored(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyId")
	partnerID := r.PathValue("partnerId")
	if surveyID == "" || partnerID == "" {
		WriteError(w, model.NewBadRequestError("survey and partner IDs required"))
		return
	}

	selfCode := r.URL.Query().Get("self_access_code")
	partnerCode := r.URL.Query().Get("partner_access_code")

	summary, err := h.comparisonService.CompareStored(r.Context(), surveyID, partnerID, selfCode, partnerCode)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summary, map[string]string{
		"self":    "/v1/surveys/" + surveyID + "/compare/" + partnerID,
		"survey":  "/v1/surveys/" + surveyID,
		"partner": "/v1/surveys/" + partnerID,
	})
}

// Compare handles POST /v1/compare - compare two raw exports inline
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req model.CompareRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	summary, err := h.comparisonService.CompareRaw(req.Self, req.Partner)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summary, map[string]string{
		"self": "/v1/compare",
	})
}
