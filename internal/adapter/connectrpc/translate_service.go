package connectrpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

const TranslateServiceName = "lingua.v1.TranslateService"

type Translator interface {
	Translate(ctx context.Context, query string, dir translate.Direction) translate.Result
}

type TranslateRequest struct {
	Query     string `json:"query"`
	Direction string `json:"direction"`
}

type TranslateService struct {
	translator Translator
}

var _ ServiceHandler = (*TranslateService)(nil)

func NewTranslateService(translator Translator) *TranslateService {
	return &TranslateService{translator: translator}
}

func (s *TranslateService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(TranslateServiceName,
		unary(TranslateServiceName, "Translate", s.Translate, opts),
	)
}

func (s *TranslateService) Translate(ctx context.Context, req *TranslateRequest) (*translate.Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("query required"))
	}
	dir, ok := translate.ParseDirection(req.Direction)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported direction %q", req.Direction))
	}
	res := s.translator.Translate(ctx, req.Query, dir)
	return &res, nil
}
