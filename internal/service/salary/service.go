package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/salary"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/devxankit/appzeto-payroll/internal/pkg/finance"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// provisionWindowMonths is the rolling window created when a member's
// salary is assigned: the current month plus the three following.
const provisionWindowMonths = 4

type SalaryServiceImpl struct {
	recordRepo salary.RecordRepository
	memberRepo staff.MemberRepository
	ledger     finance.Gateway
	tx         database.TxRunner
	logger     *slog.Logger
	now        func() time.Time
}

// NewSalaryService wires the generator and status machine. The clock
// is injected so month boundaries are deterministic under test; pass
// nil for time.Now.
func NewSalaryService(
	recordRepo salary.RecordRepository,
	memberRepo staff.MemberRepository,
	ledger finance.Gateway,
	tx database.TxRunner,
	logger *slog.Logger,
	now func() time.Time,
) salary.SalaryService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SalaryServiceImpl{
		recordRepo: recordRepo,
		memberRepo: memberRepo,
		ledger:     ledger,
		tx:         tx,
		logger:     logger,
		now:        now,
	}
}

// actorFromContext returns the user_id claim from the JWT context, or
// "system" when the call did not come through the authenticated API.
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

// ========== GENERATION ==========

func (s *SalaryServiceImpl) Provision(ctx context.Context, req salary.ProvisionRequest) (salary.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return salary.GenerateResult{}, err
	}

	category := staff.Category(req.Category)
	member, err := s.memberRepo.GetByID(ctx, req.MemberID, category)
	if err != nil {
		return salary.GenerateResult{}, err
	}

	if err := s.memberRepo.UpdateFixedSalary(ctx, member.ID, category, req.FixedSalary); err != nil {
		return salary.GenerateResult{}, fmt.Errorf("failed to store fixed salary: %w", err)
	}
	member.FixedSalary = req.FixedSalary

	actor := actorFromContext(ctx)
	result := salary.GenerateResult{}

	month := salary.MonthOf(s.now())
	for i := 0; i < provisionWindowMonths; i++ {
		outcome, record, err := s.upsertRecord(ctx, member, month, actor)
		if err != nil {
			result.Failed = append(result.Failed, salary.BatchFailure{
				MemberID: member.ID,
				Category: string(member.Category),
				Reason:   fmt.Sprintf("month %s: %v", month, err),
			})
		} else {
			applyOutcome(&result, outcome)
			result.Records = append(result.Records, mapToRecordResponse(record))
		}
		result.Total++
		month = month.Next()
	}

	return result, nil
}

func (s *SalaryServiceImpl) GenerateMonth(ctx context.Context, req salary.GenerateMonthRequest) (salary.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return salary.GenerateResult{}, err
	}
	month, err := salary.ParseMonth(req.Month)
	if err != nil {
		return salary.GenerateResult{}, err
	}

	members, err := s.memberRepo.GetActiveCompensable(ctx)
	if err != nil {
		return salary.GenerateResult{}, fmt.Errorf("failed to load compensable members: %w", err)
	}

	actor := actorFromContext(ctx)
	result := salary.GenerateResult{Month: month.String()}

	// Each member is processed independently; one failure must not
	// abort the batch.
	for _, member := range members {
		outcome, _, err := s.upsertRecord(ctx, member, month, actor)
		if err != nil {
			s.logger.Warn("salary generation failed for member",
				"member_id", member.ID, "category", member.Category, "month", month.String(), "error", err)
			result.Failed = append(result.Failed, salary.BatchFailure{
				MemberID: member.ID,
				Category: string(member.Category),
				Reason:   err.Error(),
			})
		} else {
			applyOutcome(&result, outcome)
		}
		result.Total++
	}

	return result, nil
}

type upsertOutcome int

const (
	outcomeGenerated upsertOutcome = iota
	outcomeUpdated
	outcomeSkipped
)

func applyOutcome(result *salary.GenerateResult, outcome upsertOutcome) {
	switch outcome {
	case outcomeGenerated:
		result.Generated++
	case outcomeUpdated:
		result.Updated++
	default:
		result.Skipped++
	}
}

// upsertRecord creates or refreshes the record for (member, month).
// The unique key in the store is the serialization point: losing an
// insert race to a concurrent run counts as a skip, not a failure.
func (s *SalaryServiceImpl) upsertRecord(ctx context.Context, member staff.Member, month salary.Month, actor string) (upsertOutcome, salary.Record, error) {
	existing, err := s.recordRepo.GetByKey(ctx, member.ID, member.Category, month)
	if err != nil && !errors.Is(err, salary.ErrRecordNotFound) {
		return outcomeSkipped, salary.Record{}, fmt.Errorf("failed to check existing record: %w", err)
	}

	if errors.Is(err, salary.ErrRecordNotFound) {
		paymentDate, paymentDay := salary.ResolvePaymentDate(member.JoiningDate, month)
		record := salary.Record{
			ID:          uuid.NewString(),
			MemberID:    member.ID,
			Category:    member.Category,
			Month:       month,
			MemberName:  member.Name,
			Department:  member.Department,
			Role:        member.Role,
			FixedSalary: member.FixedSalary,
			PaymentDate: paymentDate,
			PaymentDay:  paymentDay,
			Status:      salary.StatusPending,
			CreatedBy:   actor,
			UpdatedBy:   actor,
		}
		created, err := s.recordRepo.Create(ctx, record)
		if errors.Is(err, salary.ErrRecordAlreadyExists) {
			return outcomeSkipped, record, nil
		}
		if err != nil {
			return outcomeSkipped, salary.Record{}, err
		}
		return outcomeGenerated, created, nil
	}

	if existing.FixedSalary.Equal(member.FixedSalary) {
		return outcomeSkipped, existing, nil
	}

	// Salary drifted since generation: refresh compensation fields
	// only. Status and paid metadata are never touched here.
	paymentDate, paymentDay := salary.ResolvePaymentDate(member.JoiningDate, month)
	if err := s.recordRepo.UpdateCompensation(ctx, existing.ID, member.FixedSalary, paymentDate, paymentDay, actor); err != nil {
		return outcomeSkipped, salary.Record{}, err
	}
	existing.FixedSalary = member.FixedSalary
	existing.PaymentDate = paymentDate
	existing.PaymentDay = paymentDay
	existing.UpdatedBy = actor
	return outcomeUpdated, existing, nil
}

// ========== STATUS MACHINE ==========

func (s *SalaryServiceImpl) SetStatus(ctx context.Context, req salary.SetStatusRequest) (salary.StatusResult, error) {
	if err := req.Validate(); err != nil {
		return salary.StatusResult{}, err
	}

	record, err := s.recordRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salary.StatusResult{}, err
	}

	// A paid record from a past month is settled history.
	currentMonth := salary.MonthOf(s.now())
	if record.Month.Before(currentMonth) && record.Status == salary.StatusPaid {
		return salary.StatusResult{}, salary.ErrRecordImmutable
	}

	actor := actorFromContext(ctx)
	target := salary.Status(req.Status)
	var warning string

	switch target {
	case salary.StatusPaid:
		method := salary.PaymentMethodBankTransfer
		if req.PaymentMethod != nil {
			method = salary.PaymentMethod(*req.PaymentMethod)
		}

		// Re-read and update in one transaction; a concurrent
		// transition may have paid this record in between. The ledger's
		// own duplicate suppression is the second line of defense, not
		// a substitute for this check.
		var alreadyPaid bool
		paidAt := s.now()
		err := s.tx.Run(ctx, func(ctx context.Context) error {
			fresh, err := s.recordRepo.GetByID(ctx, req.ID)
			if err != nil {
				return err
			}
			alreadyPaid = fresh.Status == salary.StatusPaid
			return s.recordRepo.UpdateStatus(ctx, record.ID, salary.StatusPaid, &paidAt, &method, actor)
		})
		if err != nil {
			return salary.StatusResult{}, err
		}

		if !alreadyPaid {
			_, err := s.ledger.CreateOutgoing(ctx, finance.CreateTransactionRequest{
				Amount:          record.FixedSalary,
				Category:        "salary",
				TransactionDate: paidAt,
				CreatedBy:       actor,
				SubjectID:       record.MemberID,
				PaymentMethod:   string(method),
				Description:     fmt.Sprintf("Salary %s for %s", record.Month, record.MemberName),
				Source:          finance.SourceTag{Type: finance.SourceTypeSalary, ID: record.ID},
				CheckDuplicate:  true,
			})
			if err != nil {
				// The local record stays the source of truth; ledger
				// reconciliation is best-effort.
				warning = fmt.Sprintf("record marked paid but ledger sync failed: %v", err)
				s.logger.Warn("ledger transaction create failed",
					"record_id", record.ID, "member_id", record.MemberID, "error", err)
			}
		}

	case salary.StatusPending:
		wasPaid := record.Status == salary.StatusPaid
		if err := s.recordRepo.UpdateStatus(ctx, record.ID, salary.StatusPending, nil, nil, actor); err != nil {
			return salary.StatusResult{}, err
		}
		if wasPaid {
			source := finance.SourceTag{Type: finance.SourceTypeSalary, ID: record.ID}
			if err := s.ledger.CancelForSource(ctx, source, "salary reverted to pending"); err != nil {
				warning = fmt.Sprintf("record reverted but ledger cancel failed: %v", err)
				s.logger.Warn("ledger transaction cancel failed",
					"record_id", record.ID, "member_id", record.MemberID, "error", err)
			}
		}
	}

	updated, err := s.recordRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salary.StatusResult{}, err
	}

	return salary.StatusResult{
		Record:        mapToRecordResponse(updated),
		LedgerWarning: warning,
	}, nil
}

func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Status == salary.StatusPaid {
		return salary.ErrCannotDeletePaidRecord
	}
	if record.Month.Before(salary.MonthOf(s.now())) {
		return salary.ErrCannotDeletePastRecord
	}

	return s.recordRepo.Delete(ctx, id)
}

// ========== READS ==========

func (s *SalaryServiceImpl) GetRecord(ctx context.Context, id string) (salary.RecordResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return salary.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *SalaryServiceImpl) ListRecords(ctx context.Context, filter salary.ListFilter) (salary.ListRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return salary.ListRecordResponse{}, err
	}

	data := make([]salary.RecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapToRecordResponse(r))
	}

	return salary.ListRecordResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r salary.Record) salary.RecordResponse {
	var paidDateStr *string
	if r.PaidDate != nil {
		str := r.PaidDate.Format(time.RFC3339)
		paidDateStr = &str
	}

	var methodStr *string
	if r.PaymentMethod != nil {
		str := string(*r.PaymentMethod)
		methodStr = &str
	}

	return salary.RecordResponse{
		ID:            r.ID,
		MemberID:      r.MemberID,
		Category:      string(r.Category),
		Month:         r.Month.String(),
		MemberName:    r.MemberName,
		Department:    r.Department,
		Role:          r.Role,
		FixedSalary:   r.FixedSalary,
		PaymentDate:   r.PaymentDate.Format("2006-01-02"),
		PaymentDay:    r.PaymentDay,
		Status:        string(r.Status),
		PaidDate:      paidDateStr,
		PaymentMethod: methodStr,
		Remarks:       r.Remarks,
	}
}
