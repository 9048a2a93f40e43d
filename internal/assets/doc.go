// Package assets provides the HTML document template and CSS stylesheets
// used to wrap rendered Markdown into a complete document.
//
// Assets are read through a Source. Embedded serves the built-in set,
// Dir serves a directory on disk, and Layered stacks sources so a custom
// directory only needs the files it overrides:
//
//	{dir}/
//	├── styles/
//	│   ├── preview.css   # content stylesheet scoped under .md-preview
//	│   ├── zebra.css     # alternate table row rule
//	│   └── print.css     # page rules for PDF output
//	└── templates/
//	    └── document.html # text/template document wrapper
//
// Names are plain identifiers without extension. Dir reads through an
// os.Root, so neither names nor symlinks can reach outside the directory.
package assets
