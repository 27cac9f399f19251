/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streamservice

import (
	"context"
	"fmt"

	"github.com/suparena/kinesisctl/streammodels"
)

// StreamService is the control and data plane of a managed streaming service.
// Implementations return errors from the errors package: NotFound when the
// stream does not exist and Transient for any other service failure.
type StreamService interface {
	// CreateStream asks the service to create a stream. Creation is
	// asynchronous; the stream starts out CREATING.
	CreateStream(ctx context.Context, name string, shardCount int) error

	DescribeStream(ctx context.Context, name string, shardLimit int32) (*streammodels.Stream, error)

	// ListStreams returns names after cursor (exclusive). An empty cursor starts
	// from the beginning.
	ListStreams(ctx context.Context, cursor string, limit int32) (*streammodels.ListPage, error)

	PutRecord(ctx context.Context, name string, record streammodels.Record) (*streammodels.PutResult, error)

	// DeleteStream asks the service to delete a stream. Deletion is asynchronous.
	DeleteStream(ctx context.Context, name string) error
}

// ListAllStreams follows the ListStreams cursor until the service reports no
// more pages. The last accumulated name is used as the next cursor.
func ListAllStreams(ctx context.Context, svc StreamService, limit int32) ([]string, error) {
	page, err := svc.ListStreams(ctx, "", limit)
	if err != nil {
		return nil, err
	}
	names := append([]string(nil), page.Names...)

	for page.HasMore {
		if len(page.Names) == 0 {
			return nil, fmt.Errorf("list streams: empty page reports more results after %d names", len(names))
		}

		cursor := names[len(names)-1]
		page, err = svc.ListStreams(ctx, cursor, limit)
		if err != nil {
			return nil, err
		}
		names = append(names, page.Names...)
	}

	return names, nil
}
