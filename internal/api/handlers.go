package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/services"
	"github.com/lockuplabs/token-lockup-service/internal/types"
)

// principalHeader carries the caller identity. Authentication happens
// upstream; the value here is trusted as-is.
const principalHeader = "X-Principal"

type unlockPayload struct {
	// Time is the unix threshold of a time-watermarked unlock, or the
	// ledger sequence of a sequence-consuming one.
	Time    uint64 `json:"time"`
	Percent uint32 `json:"percent"`
}

func toSchedule(payload []unlockPayload) []lockup.Unlock {
	schedule := make([]lockup.Unlock, len(payload))
	for i, p := range payload {
		schedule[i] = lockup.Unlock{Time: p.Time, Percent: p.Percent}
	}
	return schedule
}

func fromSchedule(schedule []lockup.Unlock) []unlockPayload {
	payload := make([]unlockPayload, len(schedule))
	for i, u := range schedule {
		payload[i] = unlockPayload{Time: u.Time, Percent: u.Percent}
	}
	return payload
}

type initializeRequest struct {
	LockupID string          `json:"lockup_id"`
	Variant  string          `json:"variant"`
	Admin    string          `json:"admin"`
	Owner    string          `json:"owner"`
	Unlocks  []unlockPayload `json:"unlocks"`
}

func (s *Server) initializeLockup(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	err := s.service.Initialize(
		r.Context(), req.LockupID, types.LockupVariant(req.Variant),
		req.Admin, req.Owner, toSchedule(req.Unlocks),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

type lockupResponse struct {
	LockupID string          `json:"lockup_id"`
	Variant  string          `json:"variant"`
	Admin    string          `json:"admin"`
	Owner    string          `json:"owner"`
	Unlocks  []unlockPayload `json:"unlocks"`
}

func (s *Server) getLockup(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.GetLockup(r.Context(), chi.URLParam(r, "lockupID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lockupResponse{
		LockupID: doc.ID,
		Variant:  doc.Variant.String(),
		Admin:    doc.Admin,
		Owner:    doc.Owner,
		Unlocks:  fromSchedule(doc.Schedule()),
	})
}

type updatePrincipalRequest struct {
	Principal string `json:"principal"`
}

func (s *Server) updateAdmin(w http.ResponseWriter, r *http.Request) {
	var req updatePrincipalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	err := s.service.UpdateAdmin(r.Context(), r.Header.Get(principalHeader), chi.URLParam(r, "lockupID"), req.Principal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) updateOwner(w http.ResponseWriter, r *http.Request) {
	var req updatePrincipalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	err := s.service.UpdateOwner(r.Context(), r.Header.Get(principalHeader), chi.URLParam(r, "lockupID"), req.Principal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.service.GetSchedule(r.Context(), chi.URLParam(r, "lockupID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fromSchedule(schedule))
}

type setScheduleRequest struct {
	Unlocks []unlockPayload `json:"unlocks"`
}

func (s *Server) setSchedule(w http.ResponseWriter, r *http.Request) {
	var req setScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	err := s.service.SetSchedule(r.Context(), r.Header.Get(principalHeader), chi.URLParam(r, "lockupID"), toSchedule(req.Unlocks))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type claimRequest struct {
	Assets []string `json:"assets"`
	// Sequence selects the checkpoint of a sequence-consuming lockup. It
	// must be absent for time-watermarked lockups.
	Sequence *uint64 `json:"sequence,omitempty"`
}

type claimedAssetPayload struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type claimResponse struct {
	Claims []claimedAssetPayload `json:"claims"`
}

func (s *Server) claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(req.Assets) == 0 {
		badRequest(w, "at least one asset is required")
		return
	}

	caller := r.Header.Get(principalHeader)
	lockupID := chi.URLParam(r, "lockupID")

	claims, err := func() ([]services.ClaimedAsset, error) {
		if req.Sequence != nil {
			return s.service.ClaimAt(r.Context(), caller, lockupID, *req.Sequence, req.Assets)
		}
		return s.service.Claim(r.Context(), caller, lockupID, req.Assets)
	}()
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := claimResponse{Claims: make([]claimedAssetPayload, len(claims))}
	for i, c := range claims {
		resp.Claims[i] = claimedAssetPayload{Asset: c.Asset, Amount: c.Amount.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func sequenceParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "sequence"), 10, 64)
}

type setUnlockRequest struct {
	Percent uint32 `json:"percent"`
}

func (s *Server) setUnlock(w http.ResponseWriter, r *http.Request) {
	sequence, err := sequenceParam(r)
	if err != nil {
		badRequest(w, "invalid sequence")
		return
	}
	var req setUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	err = s.service.AddUnlock(r.Context(), r.Header.Get(principalHeader), chi.URLParam(r, "lockupID"), sequence, req.Percent)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) removeUnlock(w http.ResponseWriter, r *http.Request) {
	sequence, err := sequenceParam(r)
	if err != nil {
		badRequest(w, "invalid sequence")
		return
	}
	err = s.service.RemoveUnlock(r.Context(), r.Header.Get(principalHeader), chi.URLParam(r, "lockupID"), sequence)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type unlockResponse struct {
	Sequence uint64 `json:"sequence"`
	Percent  uint32 `json:"percent"`
}

func (s *Server) getUnlock(w http.ResponseWriter, r *http.Request) {
	sequence, err := sequenceParam(r)
	if err != nil {
		badRequest(w, "invalid sequence")
		return
	}
	percent, ok, err := s.service.GetUnlock(r.Context(), chi.URLParam(r, "lockupID"), sequence)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unlock not found"})
		return
	}
	writeJSON(w, http.StatusOK, unlockResponse{Sequence: sequence, Percent: percent})
}
