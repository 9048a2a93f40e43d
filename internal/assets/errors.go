package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName is wrapped together with the not-found error of
	// the requested kind.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset directory")

	// ErrAssetRead covers I/O failures, including reads rejected for
	// leaving the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
