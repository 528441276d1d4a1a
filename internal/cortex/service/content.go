package service

import (
	"context"
	"strings"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/idx"
)

// ContentService owns article lifecycle. Publish timestamps are stamped
// server-side on the draft to published transition and cleared again when
// an item leaves the published state.
type ContentService struct {
	Store store.Store
}

type CreateContentInput struct {
	Title string
	Type  string
	State string
	Body  string
}

type UpdateContentInput struct {
	Title string
	Type  string
	State string
	Body  string
}

func (s *ContentService) CreateContent(ctx context.Context, in CreateContentInput) (domain.Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Content{}, validationErrorf("Title field is missing in post body.")
	}

	state := strings.TrimSpace(in.State)
	if state == "" {
		state = domain.StateDraft
	}
	if !domain.ValidState(state) {
		return domain.Content{}, validationErrorf("State %q is not recognised.", state)
	}

	content := domain.Content{
		ID:    idx.New().String(),
		Title: in.Title,
		Type:  strings.TrimSpace(in.Type),
		State: state,
		Body:  in.Body,
	}
	if state == domain.StatePublished {
		now := time.Now().UTC()
		content.PublishTime = &now
	}

	if err := s.Store.Contents().CreateContent(ctx, content); err != nil {
		return domain.Content{}, err
	}
	return s.Store.Contents().GetContentByID(ctx, content.ID)
}

func (s *ContentService) GetContent(ctx context.Context, id string) (domain.Content, error) {
	return s.Store.Contents().GetContentByID(ctx, id)
}

func (s *ContentService) ListContents(ctx context.Context, filter store.ContentFilter) ([]domain.Content, error) {
	if filter.State != "" && !domain.ValidState(filter.State) {
		return nil, validationErrorf("State %q is not recognised.", filter.State)
	}
	return s.Store.Contents().ListContents(ctx, filter)
}

func (s *ContentService) UpdateContent(ctx context.Context, id string, in UpdateContentInput) (domain.Content, error) {
	content, err := s.Store.Contents().GetContentByID(ctx, id)
	if err != nil {
		return domain.Content{}, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		content.Title = title
	}
	if typ := strings.TrimSpace(in.Type); typ != "" {
		content.Type = typ
	}
	if in.Body != "" {
		content.Body = in.Body
	}
	if state := strings.TrimSpace(in.State); state != "" {
		if !domain.ValidState(state) {
			return domain.Content{}, validationErrorf("State %q is not recognised.", state)
		}
		content.State = state
	}

	switch {
	case content.State == domain.StatePublished && content.PublishTime == nil:
		now := time.Now().UTC()
		content.PublishTime = &now
	case content.State != domain.StatePublished:
		content.PublishTime = nil
	}

	if err := s.Store.Contents().UpdateContent(ctx, content); err != nil {
		return domain.Content{}, err
	}
	return s.Store.Contents().GetContentByID(ctx, id)
}

func (s *ContentService) DeleteContent(ctx context.Context, id string) (domain.Content, error) {
	return s.Store.Contents().DeleteContent(ctx, id)
}
