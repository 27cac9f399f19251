/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streamservice_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/suparena/kinesisctl/streammodels"
	"github.com/suparena/kinesisctl/streamservice"
	"github.com/suparena/kinesisctl/streamservice/mock"
)

// pagedService serves fixed pages regardless of the store contents.
type pagedService struct {
	streamservice.StreamService
	pages   []*streammodels.ListPage
	cursors []string
	err     error
}

func (p *pagedService) ListStreams(ctx context.Context, cursor string, limit int32) (*streammodels.ListPage, error) {
	p.cursors = append(p.cursors, cursor)
	if p.err != nil {
		return nil, p.err
	}
	page := p.pages[0]
	p.pages = p.pages[1:]
	return page, nil
}

func TestListAllStreams(t *testing.T) {
	ctx := context.Background()

	t.Run("FollowsCursor", func(t *testing.T) {
		svc := &pagedService{pages: []*streammodels.ListPage{
			{Names: []string{"a", "b"}, HasMore: true},
			{Names: []string{"c"}, HasMore: false},
		}}

		names, err := streamservice.ListAllStreams(ctx, svc, 2)
		if err != nil {
			t.Fatalf("ListAllStreams failed: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
			t.Errorf("Expected [a b c], got %v", names)
		}
		if !reflect.DeepEqual(svc.cursors, []string{"", "b"}) {
			t.Errorf("Expected cursors [\"\" b], got %q", svc.cursors)
		}
	})

	t.Run("SinglePage", func(t *testing.T) {
		svc := &pagedService{pages: []*streammodels.ListPage{{Names: nil}}}

		names, err := streamservice.ListAllStreams(ctx, svc, 10)
		if err != nil {
			t.Fatalf("ListAllStreams failed: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("Expected no names, got %v", names)
		}
	})

	t.Run("EmptyPageWithMore", func(t *testing.T) {
		svc := &pagedService{pages: []*streammodels.ListPage{
			{Names: []string{"a"}, HasMore: true},
			{Names: nil, HasMore: true},
		}}

		if _, err := streamservice.ListAllStreams(ctx, svc, 1); err == nil {
			t.Fatal("Expected an error for a page that makes no progress")
		}
	})

	t.Run("PropagatesError", func(t *testing.T) {
		boom := errors.New("boom")
		svc := &pagedService{err: boom}

		if _, err := streamservice.ListAllStreams(ctx, svc, 10); !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got: %v", err)
		}
	})

	t.Run("AgainstMock", func(t *testing.T) {
		svc := mock.New().WithStream("a", 1).WithStream("b", 1).WithStream("c", 1)

		names, err := streamservice.ListAllStreams(ctx, svc, 2)
		if err != nil {
			t.Fatalf("ListAllStreams failed: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
			t.Errorf("Expected [a b c], got %v", names)
		}
		if got := svc.Calls(mock.OpList); got != 2 {
			t.Errorf("Expected 2 list calls, got %d", got)
		}
	})
}
