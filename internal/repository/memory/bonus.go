package memory

import (
	"context"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
)

type awardRepositoryImpl struct {
	store *Store
}

func NewAwardRepository(store *Store) bonus.AwardRepository {
	return &awardRepositoryImpl{store: store}
}

func (r *awardRepositoryImpl) Create(ctx context.Context, a bonus.Award) (bonus.Award, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	err := r.store.write(ctx, KeyBonusAwards, func(st *state) error {
		for _, existing := range st.bonusAwards {
			if existing.EmployeeID == a.EmployeeID && existing.Year == a.Year {
				return bonus.ErrBonusAlreadyApplied
			}
		}
		st.bonusAwards = append(st.bonusAwards, a)
		return nil
	})
	if err != nil {
		return bonus.Award{}, err
	}
	return a, nil
}

func (r *awardRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]bonus.Award, error) {
	var out []bonus.Award
	r.store.read(ctx, func(st *state) {
		for _, a := range st.bonusAwards {
			if a.EmployeeID == employeeID {
				out = append(out, a)
			}
		}
	})
	return out, nil
}

func (r *awardRepositoryImpl) ListPayable(ctx context.Context, employeeID string, before time.Time, payrollItemID string) ([]bonus.Award, error) {
	var out []bonus.Award
	r.store.read(ctx, func(st *state) {
		for _, a := range st.bonusAwards {
			if a.EmployeeID != employeeID || !a.AppliedAt.Before(before) {
				continue
			}
			if a.PayrollItemID == nil || *a.PayrollItemID == payrollItemID {
				out = append(out, a)
			}
		}
	})
	return out, nil
}

func (r *awardRepositoryImpl) LinkPayrollItem(ctx context.Context, awardIDs []string, payrollItemID string) error {
	if len(awardIDs) == 0 {
		return nil
	}
	ids := make(map[string]bool, len(awardIDs))
	for _, id := range awardIDs {
		ids[id] = true
	}
	return r.store.write(ctx, KeyBonusAwards, func(st *state) error {
		for i := range st.bonusAwards {
			if ids[st.bonusAwards[i].ID] {
				itemID := payrollItemID
				st.bonusAwards[i].PayrollItemID = &itemID
			}
		}
		return nil
	})
}
