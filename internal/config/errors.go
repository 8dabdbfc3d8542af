package config

import "errors"

// Configuration validation errors, returned by File.Validate.
var (
	// ErrUnknownTag is returned when classes or probes name a tag that
	// does not exist.
	ErrUnknownTag = errors.New("unknown button tag")

	// ErrEmptyClass is returned when a class alias is blank.
	ErrEmptyClass = errors.New("empty class name")

	// ErrEmptyProbe is returned when a probe name is blank.
	ErrEmptyProbe = errors.New("empty probe name")

	// ErrInvalidFallback is returned when random_post_fallback is neither
	// an absolute path nor an absolute URL.
	ErrInvalidFallback = errors.New("invalid random_post_fallback: must be an absolute path or URL")
)

// Command-line option errors.
var (
	// ErrConflictingOutput is returned when --output is combined with
	// several inputs or with --write.
	ErrConflictingOutput = errors.New("conflicting output options: --output takes a single input and cannot be combined with --write")

	// ErrWriteNeedsFile is returned when --write is used while reading
	// from standard input.
	ErrWriteNeedsFile = errors.New("--write requires at least one file argument")

	// ErrInvalidJobs is returned when --jobs is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")
)
