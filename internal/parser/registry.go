package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Registry dispatches file bytes to the right parser. Detection order is
// fixed (bank CSV, Satispay, PayPal, PDF) so dispatch is deterministic even
// for crafted files that several parsers would accept.
type Registry struct {
	parsers []Parser
	log     *logrus.Logger
}

// NewRegistry builds a registry with all four parsers registered.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		parsers: []Parser{
			&BankCSVParser{},
			&SatispayParser{},
			&PayPalParser{},
			&PDFParser{},
		},
		log: log,
	}
}

// Parsers returns the registered parsers in detection order.
func (r *Registry) Parsers() []Parser {
	return r.parsers
}

// Detect returns the first parser that recognizes the file, or nil.
func (r *Registry) Detect(filename string, content []byte) Parser {
	for _, p := range r.parsers {
		if p.Detect(filename, content) {
			return p
		}
	}
	return nil
}

// ParseFile selects a parser and parses. A caller-supplied hint is
// authoritative: detect is run only as a confirmation and a disagreement is
// logged, not fatal. Without a hint the first parser whose Detect accepts
// the file wins; if none does, the upload is rejected with
// NO_PARSER_MATCHED.
func (r *Registry) ParseFile(filename string, content []byte, hint SourceType) (*ParseResult, error) {
	if hint != "" {
		p := r.bySource(hint)
		if p == nil {
			return nil, &ImportError{
				Code:     ErrNoParserMatched,
				Message:  fmt.Sprintf("unknown source hint %q", hint),
				Filename: filename,
			}
		}
		if !p.Detect(filename, content) {
			r.log.WithFields(logrus.Fields{
				"filename": filename,
				"hint":     hint,
			}).Warn("source hint does not match detected structure, parsing with hinted parser anyway")
		}
		return p.Parse(filename, content)
	}

	p := r.Detect(filename, content)
	if p == nil {
		return nil, &ImportError{
			Code:     ErrNoParserMatched,
			Message:  fmt.Sprintf("no parser recognizes file %q", filename),
			Filename: filename,
		}
	}
	return p.Parse(filename, content)
}

func (r *Registry) bySource(source SourceType) Parser {
	for _, p := range r.parsers {
		if p.SourceType() == source {
			return p
		}
	}
	return nil
}
