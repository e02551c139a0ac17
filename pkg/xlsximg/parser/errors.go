// Package parser decodes the shared-string table and worksheet parts of an
// xlsx package and derives question records and image indicators from them.
package parser

import "errors"

// ErrMissingEntry indicates a required package part does not exist.
var ErrMissingEntry = errors.New("missing package entry")

// ErrXMLParse indicates a package part is not well-formed XML.
var ErrXMLParse = errors.New("malformed xml")
