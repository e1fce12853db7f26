package reward

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/performance"
	"github.com/devxankit/appzeto-payroll/internal/domain/reward"
	"github.com/devxankit/appzeto-payroll/internal/domain/salary"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type RewardServiceImpl struct {
	rewardRepo reward.RewardRepository
	awardRepo  reward.AwardRepository
	memberRepo staff.MemberRepository
	perf       performance.Provider
	logger     *slog.Logger
	now        func() time.Time
}

// NewRewardService wires the eligibility evaluator. The clock is
// injected so monthly dedup windows are deterministic under test; pass
// nil for time.Now.
func NewRewardService(
	rewardRepo reward.RewardRepository,
	awardRepo reward.AwardRepository,
	memberRepo staff.MemberRepository,
	perf performance.Provider,
	logger *slog.Logger,
	now func() time.Time,
) reward.RewardService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RewardServiceImpl{
		rewardRepo: rewardRepo,
		awardRepo:  awardRepo,
		memberRepo: memberRepo,
		perf:       perf,
		logger:     logger,
		now:        now,
	}
}

func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "system"
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return "system"
}

// ========== EVALUATION ==========

func (s *RewardServiceImpl) Evaluate(ctx context.Context, rewardID string) (reward.EvaluateResult, error) {
	rw, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return reward.EvaluateResult{}, err
	}

	now := s.now()
	if !rw.IsActive {
		return reward.EvaluateResult{}, reward.ErrRewardInactive
	}
	if (rw.ValidFrom != nil && now.Before(*rw.ValidFrom)) ||
		(rw.ValidUntil != nil && now.After(*rw.ValidUntil)) {
		return reward.EvaluateResult{}, reward.ErrRewardExpired
	}

	threshold, ok := validator.IsPercentage(rw.Criteria.Value)
	if !ok {
		return reward.EvaluateResult{}, reward.ErrInvalidThreshold
	}

	month := salary.MonthOf(now)
	result := reward.EvaluateResult{RewardID: rw.ID, Month: month.String()}

	switch rw.Team {
	case reward.TeamDev:
		err = s.evaluateDevs(ctx, rw, threshold, now, &result)
	case reward.TeamPM:
		err = s.evaluateManagers(ctx, rw, threshold, now, &result)
	default:
		return reward.EvaluateResult{}, reward.ErrTeamNotSupported
	}
	if err != nil {
		return reward.EvaluateResult{}, err
	}

	return result, nil
}

func (s *RewardServiceImpl) evaluateDevs(ctx context.Context, rw reward.Reward, threshold float64, now time.Time, result *reward.EvaluateResult) error {
	candidates, err := s.memberRepo.GetActiveByCategory(ctx, staff.CategoryDeveloper)
	if err != nil {
		return fmt.Errorf("failed to load developers: %w", err)
	}

	for _, candidate := range candidates {
		rate, err := s.perf.RefreshCompletionRate(ctx, candidate.ID)
		if err != nil {
			s.recordFailure(result, candidate, err)
			continue
		}
		awarded, err := s.awardIfEligible(ctx, rw, candidate, rate, threshold, now)
		if err != nil {
			s.recordFailure(result, candidate, err)
			continue
		}
		switch awarded {
		case evalAwarded:
			result.DevAwarded++
		case evalAlreadyAwarded:
			result.SkippedExisting++
		case evalBelowThreshold:
			result.SkippedBelow++
		}
	}
	return nil
}

func (s *RewardServiceImpl) evaluateManagers(ctx context.Context, rw reward.Reward, threshold float64, now time.Time, result *reward.EvaluateResult) error {
	candidates, err := s.memberRepo.GetActiveByCategory(ctx, staff.CategoryManager)
	if err != nil {
		return fmt.Errorf("failed to load managers: %w", err)
	}

	for _, candidate := range candidates {
		ratio, err := s.managerRatio(ctx, candidate.ID)
		if err != nil {
			s.recordFailure(result, candidate, err)
			continue
		}
		awarded, err := s.awardIfEligible(ctx, rw, candidate, ratio, threshold, now)
		if err != nil {
			s.recordFailure(result, candidate, err)
			continue
		}
		switch awarded {
		case evalAwarded:
			result.ManagerAwarded++
		case evalAlreadyAwarded:
			result.SkippedExisting++
		case evalBelowThreshold:
			result.SkippedBelow++
		}
	}
	return nil
}

// managerRatio aggregates non-cancelled work items across the projects
// the manager runs right now; assignments are not snapshotted per
// month.
func (s *RewardServiceImpl) managerRatio(ctx context.Context, managerID string) (float64, error) {
	projects, err := s.perf.ManagedProjects(ctx, managerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load managed projects: %w", err)
	}

	var items []performance.WorkItem
	for _, project := range projects {
		projectItems, err := s.perf.ProjectWorkItems(ctx, project.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to load work items for project %s: %w", project.ID, err)
		}
		items = append(items, projectItems...)
	}

	return completionRatio(items), nil
}

type evalOutcome int

const (
	evalAwarded evalOutcome = iota
	evalAlreadyAwarded
	evalBelowThreshold
)

// awardIfEligible applies the threshold (inclusive) and the monthly
// dedup check, then pays the award with the reward's amount copied at
// award time so later reward edits cannot change it.
func (s *RewardServiceImpl) awardIfEligible(ctx context.Context, rw reward.Reward, candidate staff.Member, ratio, threshold float64, now time.Time) (evalOutcome, error) {
	if ratio < threshold {
		return evalBelowThreshold, nil
	}

	monthStart, monthEnd := salary.MonthOf(now).Bounds(now.Location())
	exists, err := s.awardRepo.ExistsInRange(ctx, candidate.ID, candidate.Category, rw.ID, monthStart, monthEnd)
	if err != nil {
		return evalBelowThreshold, fmt.Errorf("failed to check existing award: %w", err)
	}
	if exists {
		return evalAlreadyAwarded, nil
	}

	award := reward.Award{
		ID:          uuid.NewString(),
		CandidateID: candidate.ID,
		Category:    candidate.Category,
		RewardID:    rw.ID,
		Amount:      rw.Amount,
		Reason: fmt.Sprintf("Reward %q for %s: completion ratio met threshold %s%%",
			rw.Name, now.Format("January 2006"), rw.Criteria.Value),
		Status:    reward.AwardStatusPaid,
		CreatedBy: actorFromContext(ctx),
		PaidAt:    now,
	}
	if _, err := s.awardRepo.Create(ctx, award); err != nil {
		return evalBelowThreshold, fmt.Errorf("failed to create award: %w", err)
	}
	return evalAwarded, nil
}

func (s *RewardServiceImpl) recordFailure(result *reward.EvaluateResult, candidate staff.Member, err error) {
	s.logger.Warn("reward evaluation failed for candidate",
		"candidate_id", candidate.ID, "category", candidate.Category, "error", err)
	result.Failed = append(result.Failed, reward.EvaluationFailure{
		CandidateID: candidate.ID,
		Category:    string(candidate.Category),
		Reason:      err.Error(),
	})
}

// ========== READS ==========

func (s *RewardServiceImpl) GetReward(ctx context.Context, id string) (reward.RewardResponse, error) {
	rw, err := s.rewardRepo.GetByID(ctx, id)
	if err != nil {
		return reward.RewardResponse{}, err
	}
	return mapToRewardResponse(rw), nil
}

func (s *RewardServiceImpl) ListRewards(ctx context.Context, activeOnly bool) ([]reward.RewardResponse, error) {
	rewards, err := s.rewardRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]reward.RewardResponse, 0, len(rewards))
	for _, rw := range rewards {
		result = append(result, mapToRewardResponse(rw))
	}
	return result, nil
}

func (s *RewardServiceImpl) ListAwards(ctx context.Context, rewardID string) ([]reward.AwardResponse, error) {
	if _, err := s.rewardRepo.GetByID(ctx, rewardID); err != nil {
		return nil, err
	}

	awards, err := s.awardRepo.ListByReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	result := make([]reward.AwardResponse, 0, len(awards))
	for _, a := range awards {
		result = append(result, reward.AwardResponse{
			ID:          a.ID,
			CandidateID: a.CandidateID,
			Category:    string(a.Category),
			RewardID:    a.RewardID,
			Amount:      a.Amount,
			Reason:      a.Reason,
			Status:      string(a.Status),
			PaidAt:      a.PaidAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ========== HELPERS ==========

func mapToRewardResponse(rw reward.Reward) reward.RewardResponse {
	var validFrom, validUntil *string
	if rw.ValidFrom != nil {
		str := rw.ValidFrom.Format("2006-01-02")
		validFrom = &str
	}
	if rw.ValidUntil != nil {
		str := rw.ValidUntil.Format("2006-01-02")
		validUntil = &str
	}

	return reward.RewardResponse{
		ID:     rw.ID,
		Name:   rw.Name,
		Team:   string(rw.Team),
		Amount: rw.Amount,
		Criteria: reward.CriteriaDTO{
			Type:        rw.Criteria.Type,
			Value:       rw.Criteria.Value,
			Description: rw.Criteria.Description,
		},
		Tags:       rw.Tags,
		IsActive:   rw.IsActive,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
}
