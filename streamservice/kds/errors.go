/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kds

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/aws/smithy-go"

	streamerrors "github.com/suparena/kinesisctl/errors"
)

const (
	codeResourceNotFound = "ResourceNotFoundException"
	codeResourceInUse    = "ResourceInUseException"
)

// mapError translates a Kinesis error into the errors taxonomy. Only a missing
// stream becomes NotFound, and a name clash on create becomes AlreadyExists.
// Everything else is Transient.
func mapError(operation, name string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) || errorCodeIs(err, codeResourceNotFound) {
		return streamerrors.NewNotFoundError("stream", name, err)
	}

	var inUse *types.ResourceInUseException
	if operation == "CreateStream" && (errors.As(err, &inUse) || errorCodeIs(err, codeResourceInUse)) {
		return streamerrors.NewAlreadyExistsError("stream", name, err)
	}

	return streamerrors.NewTransientError(operation, err)
}

// errorCodeIs compares service error codes case-insensitively.
func errorCodeIs(err error, code string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.EqualFold(apiErr.ErrorCode(), code)
}
