package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrService marks a generic transport or response-parse failure from an
	// external provider.
	ErrService = errors.New("service error")
	// ErrNotAvailable marks a resource that a provider reports as missing,
	// most importantly a video without a transcript. Distinguishing it from
	// ErrService lets the pipeline fall back to an unverified candidate
	// instead of treating the call as broken.
	ErrNotAvailable = errors.New("not available")
	// ErrValidation marks a request the caller built incorrectly.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks missing or unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
