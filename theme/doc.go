// Package theme defines the document theme model and renders it to CSS.
//
// A Theme is a plain value: assigning or passing it copies every field, so
// the built-in themes returned by Light, Dark, Custom and Get can be edited
// freely without affecting later callers.
//
// Themes travel as JSON (Export, Import), can be partially overridden with
// a JSON-shaped map (Merge) and render to CSS custom properties
// (CSSVariables) consumed by the document stylesheet.
package theme
