package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrMarkdownRender indicates the Markdown renderer failed. Invalid
	// Markdown is never an error; this covers renderer faults only.
	ErrMarkdownRender = pipeline.ErrMarkdownRender

	// ErrDocumentRender indicates the document template failed to execute.
	ErrDocumentRender = pipeline.ErrDocumentRender

	// ErrUnknownCodeStyle indicates a syntax highlighting style that does not exist.
	ErrUnknownCodeStyle = pipeline.ErrUnknownCodeStyle

	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
