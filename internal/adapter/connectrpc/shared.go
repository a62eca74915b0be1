package connectrpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
)

// Empty is the message of parameterless calls.
type Empty struct{}

// IDRequest addresses one collection entry.
type IDRequest struct {
	ID string `json:"id"`
}

// PaginationRequest is the page selector of list calls.
type PaginationRequest struct {
	PageNo   int64 `json:"pageNo"`
	PageSize int64 `json:"pageSize"`
}

// ServiceHandler is implemented by every service of this package.
type ServiceHandler interface {
	Handler(opts ...connect.HandlerOption) (string, http.Handler)
}

// convertPagination rejects values outside int32 and applies the list defaults.
func convertPagination(p *PaginationRequest) (repository.Pagination, error) {
	if p == nil {
		return repository.Pagination{}.Normalize(), nil
	}
	for name, v := range map[string]int64{"pageNo": p.PageNo, "pageSize": p.PageSize} {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return repository.Pagination{}, fmt.Errorf("%s out of int32 range: %d", name, v)
		}
	}
	return repository.Pagination{PageNo: int32(p.PageNo), PageSize: int32(p.PageSize)}.Normalize(), nil
}

func requireID(req *IDRequest) error {
	if req.ID == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("id required"))
	}
	return nil
}

// toConnectError maps domain errors onto connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, entity.ErrInvalidWord), errors.Is(err, entity.ErrInvalidRule),
		errors.Is(err, entity.ErrInvalidIdiom), errors.Is(err, entity.ErrInvalidGoal),
		errors.Is(err, entity.ErrInvalidTarget), errors.Is(err, entity.ErrInvalidQuery):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, entity.ErrDuplicateWord), errors.Is(err, entity.ErrDuplicateRule),
		errors.Is(err, entity.ErrDuplicateIdiom):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, entity.ErrWordNotFound), errors.Is(err, entity.ErrRuleNotFound),
		errors.Is(err, entity.ErrIdiomNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

type route struct {
	procedure string
	handler   http.Handler
}

// unary exposes fn as a connect unary procedure speaking JSON.
func unary[Req, Res any](service, method string, fn func(context.Context, *Req) (*Res, error), opts []connect.HandlerOption) route {
	procedure := fmt.Sprintf("/%s/%s", service, method)
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	h := connect.NewUnaryHandler(procedure, func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		res, err := fn(ctx, req.Msg)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(res), nil
	}, opts...)
	return route{procedure: procedure, handler: h}
}

func serviceHandler(service string, routes ...route) (string, http.Handler) {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.procedure, r.handler)
	}
	return "/" + service + "/", mux
}

// Handlers is the set of services mounted by the HTTP server.
type Handlers []ServiceHandler

func NewHandlers(collection *CollectionService, practice *PracticeService, progress *ProgressService, translator *TranslateService) Handlers {
	return Handlers{collection, practice, progress, translator}
}
