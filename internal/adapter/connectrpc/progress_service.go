package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingualatina/internal/usecase"
)

const ProgressServiceName = "lingua.v1.ProgressService"

type ProgressUsecase interface {
	Dashboard(ctx context.Context) (usecase.Dashboard, error)
	SetGoal(ctx context.Context, goal int) error
	SetChallengeTarget(ctx context.Context, target int) error
}

type SetGoalRequest struct {
	Goal int `json:"goal"`
}

type SetChallengeTargetRequest struct {
	Target int `json:"target"`
}

type ProgressService struct {
	uc ProgressUsecase
}

var _ ServiceHandler = (*ProgressService)(nil)

func NewProgressService(uc ProgressUsecase) *ProgressService {
	return &ProgressService{uc: uc}
}

func (s *ProgressService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(ProgressServiceName,
		unary(ProgressServiceName, "GetDashboard", s.GetDashboard, opts),
		unary(ProgressServiceName, "SetGoal", s.SetGoal, opts),
		unary(ProgressServiceName, "SetChallengeTarget", s.SetChallengeTarget, opts),
	)
}

func (s *ProgressService) GetDashboard(ctx context.Context, _ *Empty) (*usecase.Dashboard, error) {
	d, err := s.uc.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SetGoal returns the dashboard after the change.
func (s *ProgressService) SetGoal(ctx context.Context, req *SetGoalRequest) (*usecase.Dashboard, error) {
	if err := s.uc.SetGoal(ctx, req.Goal); err != nil {
		return nil, err
	}
	return s.GetDashboard(ctx, &Empty{})
}

func (s *ProgressService) SetChallengeTarget(ctx context.Context, req *SetChallengeTargetRequest) (*usecase.Dashboard, error) {
	if err := s.uc.SetChallengeTarget(ctx, req.Target); err != nil {
		return nil, err
	}
	return s.GetDashboard(ctx, &Empty{})
}
