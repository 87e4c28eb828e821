// Package handler implements HTTP request handlers for the Attune API.
//
// The handler package is the HTTP boundary: it decodes requests, delegates
// to services, and encodes responses. No business logic lives here.
//
// # Handler Pattern
//
// Each handler struct wraps the services it needs:
//
//	surveyHandler := handler.NewSurveyHandler(surveyService)
//	mux.HandleFunc("POST /v1/surveys", surveyHandler.Upload)
//
// Path parameters use the net/http ServeMux patterns:
//
//	surveyID := r.PathValue("surveyId")
//
// # Responses
//
// Successful responses are wrapped in a data envelope with HATEOAS links:
//
//	{"data": {...}, "_links": {"self": "/v1/surveys/abc"}}
//
// Errors use RFC 9457 Problem Details JSON, produced centrally by
// MapServiceError so every handler maps service errors the same way.
//
// # Access Codes
//
// Protected surveys require an access code, supplied via the X-Access-Code
// header or the access_code query parameter. The stored comparison endpoint
// takes self_access_code and partner_access_code query parameters, one per
// side.
package handler
