package main

import (
	"io"
	"os"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the PDF exporter pool factory.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewPool creates the exporter pool used by convert --pdf.
	NewPool func(size int, opts ...md2html.PDFOption) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newExporterPool,
	}
}
