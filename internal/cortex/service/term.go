package service

import (
	"context"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/idx"
)

// TermService owns glossary entries.
type TermService struct {
	Store store.Store
}

type TermInput struct {
	Name       string
	Definition string
}

func (s *TermService) CreateTerm(ctx context.Context, in TermInput) (domain.Term, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Term{}, validationErrorf("Name field is missing in post body.")
	}

	term := domain.Term{
		ID:         idx.New().String(),
		Name:       in.Name,
		Definition: in.Definition,
	}
	if err := s.Store.Terms().CreateTerm(ctx, term); err != nil {
		return domain.Term{}, err
	}
	return s.Store.Terms().GetTermByID(ctx, term.ID)
}

func (s *TermService) GetTerm(ctx context.Context, id string) (domain.Term, error) {
	return s.Store.Terms().GetTermByID(ctx, id)
}

func (s *TermService) ListTerms(ctx context.Context) ([]domain.Term, error) {
	return s.Store.Terms().ListTerms(ctx)
}

func (s *TermService) UpdateTerm(ctx context.Context, id string, in TermInput) (domain.Term, error) {
	term, err := s.Store.Terms().GetTermByID(ctx, id)
	if err != nil {
		return domain.Term{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		term.Name = name
	}
	if in.Definition != "" {
		term.Definition = in.Definition
	}

	if err := s.Store.Terms().UpdateTerm(ctx, term); err != nil {
		return domain.Term{}, err
	}
	return s.Store.Terms().GetTermByID(ctx, id)
}

func (s *TermService) DeleteTerm(ctx context.Context, id string) (domain.Term, error) {
	return s.Store.Terms().DeleteTerm(ctx, id)
}
