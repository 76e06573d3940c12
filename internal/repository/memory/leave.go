package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{store: store}
}

func leaveID(l leave.LeaveRequest) string { return l.ID }

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	if req.ID == "" {
		req.ID = newID()
	}

	err := r.store.write(ctx, KeyLeaveRequests, func(st *state) error {
		if indexByID(st.leaves, req.ID, leaveID) >= 0 {
			return fmt.Errorf("leave request %s: %w", req.ID, errDuplicateID)
		}
		st.leaves = append(st.leaves, req)
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var (
		found leave.LeaveRequest
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.leaves, id, leaveID); i >= 0 {
			found, ok = st.leaves[i], true
		}
	})
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return found, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	r.store.read(ctx, func(st *state) {
		for _, l := range st.leaves {
			if filter.Match(l) {
				out = append(out, l)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b leave.LeaveRequest) int {
		return b.RequestDate.Compare(a.RequestDate)
	})
	return out, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) error {
	return r.store.write(ctx, KeyLeaveRequests, func(st *state) error {
		i := indexByID(st.leaves, req.ID, leaveID)
		if i < 0 {
			return leave.ErrLeaveRequestNotFound
		}
		st.leaves[i] = req
		return nil
	})
}

func (r *leaveRequestRepositoryImpl) CountApproved(ctx context.Context, employeeID, from, to string) (int, error) {
	count := 0
	r.store.read(ctx, func(st *state) {
		for _, l := range st.leaves {
			if l.EmployeeID == employeeID && l.Status == leave.LeaveRequestStatusApproved && l.OverlapsRange(from, to) {
				count++
			}
		}
	})
	return count, nil
}
