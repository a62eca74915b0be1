package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingualatina/internal/usecase"
)

const PracticeServiceName = "lingua.v1.PracticeService"

type PracticeUsecase interface {
	PickCard(ctx context.Context) (usecase.Flashcard, error)
	FlipCard(ctx context.Context) (usecase.Flashcard, error)
	NextQuiz(ctx context.Context) (usecase.QuizQuestion, error)
	AnswerQuiz(ctx context.Context, generation uint64, selected string) (usecase.QuizGrade, bool, error)
	NextTyping(ctx context.Context) (usecase.TypingPrompt, error)
	SubmitTyping(ctx context.Context, generation uint64, text string) (usecase.TypingGrade, bool, error)
}

// AnswerQuizRequest answers the question of Generation; zero means the current one.
type AnswerQuizRequest struct {
	Generation uint64 `json:"generation"`
	Selected   string `json:"selected"`
}

// AnswerQuizResponse has Accepted false when the question was already answered or replaced.
type AnswerQuizResponse struct {
	Accepted bool               `json:"accepted"`
	Grade    *usecase.QuizGrade `json:"grade,omitempty"`
}

type SubmitTypingRequest struct {
	Generation uint64 `json:"generation"`
	Text       string `json:"text"`
}

type SubmitTypingResponse struct {
	Accepted bool                 `json:"accepted"`
	Grade    *usecase.TypingGrade `json:"grade,omitempty"`
}

type PracticeService struct {
	uc PracticeUsecase
}

var _ ServiceHandler = (*PracticeService)(nil)

func NewPracticeService(uc PracticeUsecase) *PracticeService {
	return &PracticeService{uc: uc}
}

func (s *PracticeService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(PracticeServiceName,
		unary(PracticeServiceName, "PickCard", s.PickCard, opts),
		unary(PracticeServiceName, "FlipCard", s.FlipCard, opts),
		unary(PracticeServiceName, "NextQuiz", s.NextQuiz, opts),
		unary(PracticeServiceName, "AnswerQuiz", s.AnswerQuiz, opts),
		unary(PracticeServiceName, "NextTyping", s.NextTyping, opts),
		unary(PracticeServiceName, "SubmitTyping", s.SubmitTyping, opts),
	)
}

func (s *PracticeService) PickCard(ctx context.Context, _ *Empty) (*usecase.Flashcard, error) {
	card, err := s.uc.PickCard(ctx)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *PracticeService) FlipCard(ctx context.Context, _ *Empty) (*usecase.Flashcard, error) {
	card, err := s.uc.FlipCard(ctx)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *PracticeService) NextQuiz(ctx context.Context, _ *Empty) (*usecase.QuizQuestion, error) {
	q, err := s.uc.NextQuiz(ctx)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *PracticeService) AnswerQuiz(ctx context.Context, req *AnswerQuizRequest) (*AnswerQuizResponse, error) {
	grade, ok, err := s.uc.AnswerQuiz(ctx, req.Generation, req.Selected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &AnswerQuizResponse{}, nil
	}
	return &AnswerQuizResponse{Accepted: true, Grade: &grade}, nil
}

func (s *PracticeService) NextTyping(ctx context.Context, _ *Empty) (*usecase.TypingPrompt, error) {
	p, err := s.uc.NextTyping(ctx)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PracticeService) SubmitTyping(ctx context.Context, req *SubmitTypingRequest) (*SubmitTypingResponse, error) {
	grade, ok, err := s.uc.SubmitTyping(ctx, req.Generation, req.Text)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &SubmitTypingResponse{}, nil
	}
	return &SubmitTypingResponse{Accepted: true, Grade: &grade}, nil
}
