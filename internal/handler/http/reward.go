package http

import (
	"net/http"

	"github.com/devxankit/appzeto-payroll/internal/domain/reward"
	"github.com/devxankit/appzeto-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RewardHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	GetReward(w http.ResponseWriter, r *http.Request)
	ListRewards(w http.ResponseWriter, r *http.Request)
	ListAwards(w http.ResponseWriter, r *http.Request)
}

type rewardHandlerImpl struct {
	rewardService reward.RewardService
}

func NewRewardHandler(rewardService reward.RewardService) RewardHandler {
	return &rewardHandlerImpl{rewardService: rewardService}
}

func (h *rewardHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reward ID is required", nil)
		return
	}

	result, err := h.rewardService.Evaluate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rewardHandlerImpl) GetReward(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reward ID is required", nil)
		return
	}

	result, err := h.rewardService.GetReward(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rewardHandlerImpl) ListRewards(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.rewardService.ListRewards(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rewardHandlerImpl) ListAwards(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reward ID is required", nil)
		return
	}

	result, err := h.rewardService.ListAwards(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
