package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	planerrors "billcore/contexts/catalog/plan-service/domain/errors"
	planhttp "billcore/contexts/catalog/plan-service/transport/http"
	accesspolicy "billcore/contexts/identity-access/access-policy"
)

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planhttp.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreatePlanHandler(r.Context(), resolveIdentity(r), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListPlansHandler(r.Context(), resolveIdentity(r))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetPlanHandler(r.Context(), resolveIdentity(r), r.PathValue("plan_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planhttp.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdatePlanHandler(r.Context(), resolveIdentity(r), r.PathValue("plan_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.DeletePlanHandler(r.Context(), resolveIdentity(r), r.PathValue("plan_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesspolicy.ErrUnauthenticated):
		writeCatalogError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, accesspolicy.ErrPermissionDenied):
		writeCatalogError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, planerrors.ErrPlanNotFound):
		writeCatalogError(w, http.StatusNotFound, "plan_not_found", err.Error())
	case errors.Is(err, planerrors.ErrInvalidBillingCycle),
		errors.Is(err, planerrors.ErrInvalidRequest):
		writeCatalogError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, planhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
