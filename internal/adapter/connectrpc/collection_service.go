package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
)

const CollectionServiceName = "lingua.v1.CollectionService"

// CollectionUsecase is the part of the session the collection API drives.
type CollectionUsecase interface {
	AddWord(ctx context.Context, w entity.Word) (entity.Word, error)
	UpdateWord(ctx context.Context, w entity.Word) (entity.Word, error)
	RemoveWord(ctx context.Context, id string) error
	ToggleLearned(ctx context.Context, id string) (entity.Word, error)
	ListWords(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error)
	AddRule(ctx context.Context, r entity.Rule) (entity.Rule, error)
	RemoveRule(ctx context.Context, id string) error
	ListRules(ctx context.Context, keyword string) ([]entity.Rule, error)
	AddIdiom(ctx context.Context, i entity.Idiom) (entity.Idiom, error)
	RemoveIdiom(ctx context.Context, id string) error
	ListIdioms(ctx context.Context, keyword string) ([]entity.Idiom, error)
}

type ListWordsRequest struct {
	Pagination *PaginationRequest `json:"pagination,omitempty"`
	Filter     string             `json:"filter"`
	OrderBy    string             `json:"orderBy"`
}

type ListWordsResponse struct {
	Words    []entity.Word `json:"words"`
	Total    int64         `json:"total"`
	PageNo   int32         `json:"pageNo"`
	PageSize int32         `json:"pageSize"`
}

type KeywordRequest struct {
	Keyword string `json:"keyword"`
}

type ListRulesResponse struct {
	Rules []entity.Rule `json:"rules"`
}

type ListIdiomsResponse struct {
	Idioms []entity.Idiom `json:"idioms"`
}

type CollectionService struct {
	uc CollectionUsecase
}

var _ ServiceHandler = (*CollectionService)(nil)

func NewCollectionService(uc CollectionUsecase) *CollectionService {
	return &CollectionService{uc: uc}
}

func (s *CollectionService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(CollectionServiceName,
		unary(CollectionServiceName, "AddWord", s.AddWord, opts),
		unary(CollectionServiceName, "UpdateWord", s.UpdateWord, opts),
		unary(CollectionServiceName, "RemoveWord", s.RemoveWord, opts),
		unary(CollectionServiceName, "ToggleLearned", s.ToggleLearned, opts),
		unary(CollectionServiceName, "ListWords", s.ListWords, opts),
		unary(CollectionServiceName, "AddRule", s.AddRule, opts),
		unary(CollectionServiceName, "RemoveRule", s.RemoveRule, opts),
		unary(CollectionServiceName, "ListRules", s.ListRules, opts),
		unary(CollectionServiceName, "AddIdiom", s.AddIdiom, opts),
		unary(CollectionServiceName, "RemoveIdiom", s.RemoveIdiom, opts),
		unary(CollectionServiceName, "ListIdioms", s.ListIdioms, opts),
	)
}

func (s *CollectionService) AddWord(ctx context.Context, req *entity.Word) (*entity.Word, error) {
	w, err := s.uc.AddWord(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *CollectionService) UpdateWord(ctx context.Context, req *entity.Word) (*entity.Word, error) {
	if err := requireID(&IDRequest{ID: req.ID}); err != nil {
		return nil, err
	}
	w, err := s.uc.UpdateWord(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *CollectionService) RemoveWord(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	if err := s.uc.RemoveWord(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *CollectionService) ToggleLearned(ctx context.Context, req *IDRequest) (*entity.Word, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	w, err := s.uc.ToggleLearned(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *CollectionService) ListWords(ctx context.Context, req *ListWordsRequest) (*ListWordsResponse, error) {
	pagination, err := convertPagination(req.Pagination)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	query := &repository.ListWordQuery{
		Pagination: pagination,
		FilterOrder: repository.FilterOrder{
			Filter:  req.Filter,
			OrderBy: req.OrderBy,
		},
	}
	items, total, err := s.uc.ListWords(ctx, query)
	if err != nil {
		return nil, err
	}
	return &ListWordsResponse{
		Words:    lo.Ternary(items == nil, []entity.Word{}, items),
		Total:    total,
		PageNo:   pagination.PageNo,
		PageSize: pagination.PageSize,
	}, nil
}

func (s *CollectionService) AddRule(ctx context.Context, req *entity.Rule) (*entity.Rule, error) {
	r, err := s.uc.AddRule(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *CollectionService) RemoveRule(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	if err := s.uc.RemoveRule(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *CollectionService) ListRules(ctx context.Context, req *KeywordRequest) (*ListRulesResponse, error) {
	rules, err := s.uc.ListRules(ctx, req.Keyword)
	if err != nil {
		return nil, err
	}
	return &ListRulesResponse{Rules: lo.Ternary(rules == nil, []entity.Rule{}, rules)}, nil
}

func (s *CollectionService) AddIdiom(ctx context.Context, req *entity.Idiom) (*entity.Idiom, error) {
	i, err := s.uc.AddIdiom(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *CollectionService) RemoveIdiom(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	if err := s.uc.RemoveIdiom(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *CollectionService) ListIdioms(ctx context.Context, req *KeywordRequest) (*ListIdiomsResponse, error) {
	idioms, err := s.uc.ListIdioms(ctx, req.Keyword)
	if err != nil {
		return nil, err
	}
	return &ListIdiomsResponse{Idioms: lo.Ternary(idioms == nil, []entity.Idiom{}, idioms)}, nil
}
