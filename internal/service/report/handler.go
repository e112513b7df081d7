package report

import (
	"context"
	"fmt"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// HandlerKind tells the dispatcher how a handler produces its output.
type HandlerKind string

const (
	KindSynthesizer HandlerKind = "synthesizer"
	KindRetriever   HandlerKind = "retriever"
)

// Input is what a handler receives once parameters have been validated.
type Input struct {
	Params    domain.ValidatedParams
	Requester string
}

// Handler is the unit of extensibility: one per report type.
type Handler interface {
	Kind() HandlerKind
}

// Synthesizer builds a document from aggregated domain data. Collect runs
// to completion before Synthesize is called.
type Synthesizer interface {
	Handler
	Collect(ctx context.Context, in Input) (any, error)
	Synthesize(data any, in Input) (*domain.Document, error)
}

// Retriever passes a previously stored binary artifact through.
type Retriever interface {
	Handler
	Retrieve(ctx context.Context, in Input) (*domain.Blob, error)
}

// HandlerTable maps catalog handler keys to implementations.
type HandlerTable map[string]Handler

type synthesizer[T any] struct {
	collect func(ctx context.Context, in Input) (T, error)
	build   func(data T, in Input) (*domain.Document, error)
}

// NewSynthesizer pairs a typed collect step with its document builder.
func NewSynthesizer[T any](
	collect func(ctx context.Context, in Input) (T, error),
	build func(data T, in Input) (*domain.Document, error),
) Synthesizer {
	return &synthesizer[T]{collect: collect, build: build}
}

// Kind returns KindSynthesizer.
func (s *synthesizer[T]) Kind() HandlerKind {
	return KindSynthesizer
}

func (s *synthesizer[T]) Collect(ctx context.Context, in Input) (any, error) {
	return s.collect(ctx, in)
}

func (s *synthesizer[T]) Synthesize(data any, in Input) (*domain.Document, error) {
	typed, ok := data.(T)
	if !ok {
		return nil, fmt.Errorf("synthesize: unexpected dataset %T", data)
	}
	return s.build(typed, in)
}
