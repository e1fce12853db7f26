package reward

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/performance"
	"github.com/devxankit/appzeto-payroll/internal/domain/reward"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type fakeRewardRepo struct {
	rewards map[string]reward.Reward
}

func (f *fakeRewardRepo) GetByID(_ context.Context, id string) (reward.Reward, error) {
	rw, ok := f.rewards[id]
	if !ok {
		return reward.Reward{}, reward.ErrRewardNotFound
	}
	return rw, nil
}

func (f *fakeRewardRepo) List(_ context.Context, activeOnly bool) ([]reward.Reward, error) {
	var result []reward.Reward
	for _, rw := range f.rewards {
		if activeOnly && !rw.IsActive {
			continue
		}
		result = append(result, rw)
	}
	return result, nil
}

type fakeAwardRepo struct {
	mu     sync.Mutex
	awards []reward.Award
}

func (f *fakeAwardRepo) ExistsInRange(_ context.Context, candidateID string, category staff.Category, rewardID string, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.awards {
		if a.CandidateID == candidateID && a.Category == category && a.RewardID == rewardID &&
			!a.PaidAt.Before(from) && a.PaidAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAwardRepo) Create(_ context.Context, award reward.Award) (reward.Award, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	award.CreatedAt = time.Now()
	f.awards = append(f.awards, award)
	return award, nil
}

func (f *fakeAwardRepo) ListByReward(_ context.Context, rewardID string) ([]reward.Award, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []reward.Award
	for _, a := range f.awards {
		if a.RewardID == rewardID {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeMemberRepo struct {
	members []staff.Member
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string, category staff.Category) (staff.Member, error) {
	for _, m := range f.members {
		if m.ID == id && m.Category == category {
			return m, nil
		}
	}
	return staff.Member{}, staff.ErrMemberNotFound
}

func (f *fakeMemberRepo) GetActiveByCategory(_ context.Context, category staff.Category) ([]staff.Member, error) {
	var result []staff.Member
	for _, m := range f.members {
		if m.Category == category && m.IsActive {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMemberRepo) GetActiveCompensable(_ context.Context) ([]staff.Member, error) {
	return f.members, nil
}

func (f *fakeMemberRepo) UpdateFixedSalary(_ context.Context, _ string, _ staff.Category, _ decimal.Decimal) error {
	return nil
}

type fakePerf struct {
	rates     map[string]float64
	rateErrs  map[string]error
	projects  map[string][]performance.Project
	workItems map[string][]performance.WorkItem
}

func (f *fakePerf) RefreshCompletionRate(_ context.Context, developerID string) (float64, error) {
	if err, ok := f.rateErrs[developerID]; ok {
		return 0, err
	}
	rate, ok := f.rates[developerID]
	if !ok {
		return 0, staff.ErrMemberNotFound
	}
	return rate, nil
}

func (f *fakePerf) ManagedProjects(_ context.Context, managerID string) ([]performance.Project, error) {
	return f.projects[managerID], nil
}

func (f *fakePerf) ProjectWorkItems(_ context.Context, projectID string) ([]performance.WorkItem, error) {
	return f.workItems[projectID], nil
}

// ========== HELPERS ==========

func activeMember(id string, category staff.Category) staff.Member {
	return staff.Member{
		ID:       id,
		Category: category,
		Name:     "Member " + id,
		IsActive: true,
	}
}

func testReward(team reward.Team, threshold string) reward.Reward {
	return reward.Reward{
		ID:     "rw-1",
		Name:   "Monthly Delivery Bonus",
		Team:   team,
		Amount: decimal.NewFromInt(5000),
		Criteria: reward.Criteria{
			Type:  "completion_ratio",
			Value: threshold,
		},
		IsActive: true,
	}
}

func items(completed, total int) []performance.WorkItem {
	result := make([]performance.WorkItem, 0, total)
	for i := 0; i < total; i++ {
		result = append(result, performance.WorkItem{
			ID:        fmt.Sprintf("task-%d", i),
			Completed: i < completed,
		})
	}
	return result
}

type testEnv struct {
	service    reward.RewardService
	rewardRepo *fakeRewardRepo
	awardRepo  *fakeAwardRepo
	memberRepo *fakeMemberRepo
	perf       *fakePerf
	clock      *time.Time
}

func newTestEnv(now time.Time, rw reward.Reward, members []staff.Member, perf *fakePerf) *testEnv {
	env := &testEnv{
		rewardRepo: &fakeRewardRepo{rewards: map[string]reward.Reward{rw.ID: rw}},
		awardRepo:  &fakeAwardRepo{},
		memberRepo: &fakeMemberRepo{members: members},
		perf:       perf,
		clock:      &now,
	}
	env.service = NewRewardService(env.rewardRepo, env.awardRepo, env.memberRepo, env.perf, nil, func() time.Time {
		return *env.clock
	})
	return env
}

// ========== EVALUATION ==========

func TestEvaluateAwardsDevsAboveThreshold(t *testing.T) {
	now := time.Date(2025, time.July, 31, 18, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{
			activeMember("dev-1", staff.CategoryDeveloper),
			activeMember("dev-2", staff.CategoryDeveloper),
		},
		&fakePerf{rates: map[string]float64{"dev-1": 95, "dev-2": 80}},
	)

	result, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)

	assert.Equal(t, "2025-07", result.Month)
	assert.Equal(t, 1, result.DevAwarded)
	assert.Equal(t, 1, result.SkippedBelow)
	assert.Equal(t, 0, result.SkippedExisting)
	assert.Empty(t, result.Failed)

	require.Len(t, env.awardRepo.awards, 1)
	award := env.awardRepo.awards[0]
	assert.Equal(t, "dev-1", award.CandidateID)
	assert.Equal(t, staff.CategoryDeveloper, award.Category)
	assert.True(t, award.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, reward.AwardStatusPaid, award.Status)
	assert.Equal(t, now, award.PaidAt)
}

func TestEvaluateThresholdIsInclusive(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{activeMember("dev-1", staff.CategoryDeveloper)},
		&fakePerf{rates: map[string]float64{"dev-1": 90}},
	)

	result, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.DevAwarded)
	assert.Equal(t, 0, result.SkippedBelow)
}

func TestEvaluateSameMonthRerunDeduplicates(t *testing.T) {
	now := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{activeMember("dev-1", staff.CategoryDeveloper)},
		&fakePerf{rates: map[string]float64{"dev-1": 95}},
	)

	first, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.DevAwarded)

	// Same month, later day: already-awarded candidates are skipped.
	*env.clock = time.Date(2025, time.July, 25, 0, 0, 0, 0, time.UTC)
	second, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.DevAwarded)
	assert.Equal(t, 1, second.SkippedExisting)
	assert.Len(t, env.awardRepo.awards, 1)
}

func TestEvaluateNextMonthAwardsAgain(t *testing.T) {
	now := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{activeMember("dev-1", staff.CategoryDeveloper)},
		&fakePerf{rates: map[string]float64{"dev-1": 95}},
	)

	_, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)

	*env.clock = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	second, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.DevAwarded)
	assert.Len(t, env.awardRepo.awards, 2)
}

func TestEvaluateMidMonthRerunPicksUpNewlyEligible(t *testing.T) {
	now := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	perf := &fakePerf{rates: map[string]float64{"dev-1": 95, "dev-2": 70}}
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{
			activeMember("dev-1", staff.CategoryDeveloper),
			activeMember("dev-2", staff.CategoryDeveloper),
		},
		perf,
	)

	first, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.DevAwarded)

	// dev-2 crossed the threshold since the first run.
	perf.rates["dev-2"] = 92
	second, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.DevAwarded)
	assert.Equal(t, 1, second.SkippedExisting)
	assert.Len(t, env.awardRepo.awards, 2)
}

func TestEvaluateManagersAggregateAcrossProjects(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	perf := &fakePerf{
		projects: map[string][]performance.Project{
			"mgr-1": {{ID: "p-1"}, {ID: "p-2"}},
		},
		workItems: map[string][]performance.WorkItem{
			"p-1": items(5, 6),
			"p-2": items(3, 4),
		},
	}
	env := newTestEnv(now, testReward(reward.TeamPM, "80"),
		[]staff.Member{activeMember("mgr-1", staff.CategoryManager)},
		perf,
	)

	// 8 of 10 items completed across both projects: exactly 80.
	result, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ManagerAwarded)
	assert.Equal(t, 0, result.SkippedBelow)
}

func TestEvaluateManagerWithNoProjectsIsBelowThreshold(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamPM, "80"),
		[]staff.Member{activeMember("mgr-1", staff.CategoryManager)},
		&fakePerf{},
	)

	result, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ManagerAwarded)
	assert.Equal(t, 1, result.SkippedBelow)
	assert.Empty(t, env.awardRepo.awards)
}

func TestEvaluateIsolatesPerCandidateFailures(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{
			activeMember("dev-1", staff.CategoryDeveloper),
			activeMember("dev-2", staff.CategoryDeveloper),
		},
		&fakePerf{
			rates:    map[string]float64{"dev-1": 95},
			rateErrs: map[string]error{"dev-2": fmt.Errorf("stats backend timeout")},
		},
	)

	result, err := env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.DevAwarded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "dev-2", result.Failed[0].CandidateID)
	assert.Contains(t, result.Failed[0].Reason, "stats backend timeout")
}

// ========== GUARDS ==========

func TestEvaluateRejectsSalesTeam(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamSales, "90"), nil, &fakePerf{})

	_, err := env.service.Evaluate(context.Background(), "rw-1")
	assert.ErrorIs(t, err, reward.ErrTeamNotSupported)
}

func TestEvaluateRejectsInactiveReward(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	rw := testReward(reward.TeamDev, "90")
	rw.IsActive = false
	env := newTestEnv(now, rw, nil, &fakePerf{})

	_, err := env.service.Evaluate(context.Background(), "rw-1")
	assert.ErrorIs(t, err, reward.ErrRewardInactive)
}

func TestEvaluateRejectsExpiredReward(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	rw := testReward(reward.TeamDev, "90")
	until := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	rw.ValidUntil = &until
	env := newTestEnv(now, rw, nil, &fakePerf{})

	_, err := env.service.Evaluate(context.Background(), "rw-1")
	assert.ErrorIs(t, err, reward.ErrRewardExpired)
}

func TestEvaluateRejectsInvalidThreshold(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"150", "-5", "ninety", ""} {
		env := newTestEnv(now, testReward(reward.TeamDev, value), nil, &fakePerf{})
		_, err := env.service.Evaluate(context.Background(), "rw-1")
		assert.ErrorIs(t, err, reward.ErrInvalidThreshold, "threshold %q", value)
	}
}

func TestEvaluateUnknownReward(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"), nil, &fakePerf{})

	_, err := env.service.Evaluate(context.Background(), "missing")
	assert.ErrorIs(t, err, reward.ErrRewardNotFound)
}

// ========== READS ==========

func TestListAwardsRequiresExistingReward(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now, testReward(reward.TeamDev, "90"),
		[]staff.Member{activeMember("dev-1", staff.CategoryDeveloper)},
		&fakePerf{rates: map[string]float64{"dev-1": 95}},
	)

	_, err := env.service.ListAwards(context.Background(), "missing")
	assert.ErrorIs(t, err, reward.ErrRewardNotFound)

	_, err = env.service.Evaluate(context.Background(), "rw-1")
	require.NoError(t, err)

	awards, err := env.service.ListAwards(context.Background(), "rw-1")
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "dev-1", awards[0].CandidateID)
	assert.Equal(t, "paid", awards[0].Status)
}
