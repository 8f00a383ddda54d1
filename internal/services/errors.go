package services

import "errors"

var (
	ErrEmptyContent          = errors.New("content is empty")
	ErrPresentationNotFound  = errors.New("presentation not found")
	ErrSlideNotFound         = errors.New("slide not found")
	ErrInvalidFileName       = errors.New("invalid file name")
	ErrArtifactNotFound      = errors.New("artifact not found")
	ErrNoJSONObject          = errors.New("no JSON object in completion output")
	ErrCompletionUnavailable = errors.New("completion client not configured")
)
