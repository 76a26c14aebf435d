package joy

// ProgramItem is one unit of a parsed program: either a term to evaluate
// (literal value or symbol reference) or a definition block to install.
// Exactly one of Value/Define is set.
type ProgramItem struct {
	Value  Value
	Define *DefineBlock
}

// DefineClause is a single NAME == BODY pairing inside a definition block.
type DefineClause struct {
	Name string
	Body *List
}

// DefineBlock groups the clauses introduced by DEFINE, LIBRA, CONST or
// MODULE...END: all clauses in a block are installed
// atomically once the terminator is reached, so a clause may forward-
// reference a sibling defined later in the same block.
type DefineBlock struct {
	Keyword string
	Clauses []DefineClause
}

// Program is a flat term sequence, the unit the evaluator runs.
type Program []ProgramItem

var defineKeywords = map[string]bool{
	"DEFINE": true, "LIBRA": true, "CONST": true, "MODULE": true,
}

// Parser builds a Program from a token stream. Grounded on parser.go's
// _parser (_parse_line/_parse_word/_parse_quote/_parse_string
// linked-list AST construction), generalized from gelo's clause/splice/
// indirect sigils to Joy's term sequence plus DEFINE/LIBRA/CONST/MODULE
// blocks with ';'-separated clauses terminated by '.' or END.
type Parser struct {
	scan *Scanner
	tok  Token
	err  error
}

func NewParser(file string, src []byte) (*Parser, error) {
	p := &Parser{scan: NewScanner(file, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	t, err := p.scan.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return NewParseError(p.scan.file, p.tok.Line, format, args...)
}

// ParseProgram consumes the entire token stream and returns the flat term
// sequence, with each top-level definition block recorded in place as a
// ProgramItem for the evaluator to install when execution reaches it.
func (p *Parser) ParseProgram() (Program, error) {
	var items Program
	for {
		if p.tok.Kind == TokEOF {
			return items, nil
		}
		if p.tok.Kind == TokShellEscape {
			// the $... shell-escape form is an evaluator-host
			// extension outside the core language; a conforming
			// implementation may omit it entirely, so the parser discards
			// it like a comment rather than threading it into the term
			// sequence.
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.Kind == TokIdent && defineKeywords[p.tok.Text] {
			block, err := p.parseDefineBlock()
			if err != nil {
				return nil, err
			}
			items = append(items, ProgramItem{Define: block})
			continue
		}
		v, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		items = append(items, ProgramItem{Value: v})
	}
}

// parseDefineBlock parses DEFINE/LIBRA/CONST clauses up to '.', or
// MODULE's clauses up to END. Blocks do not nest: inside a block, a
// DEFINE/LIBRA/CONST/MODULE keyword is read as an ordinary clause name or
// body word, not as the start of an inner block.
func (p *Parser) parseDefineBlock() (*DefineBlock, error) {
	keyword := p.tok.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	terminatorIsEnd := keyword == "MODULE"

	block := &DefineBlock{Keyword: keyword}
	for {
		if p.tok.Kind != TokIdent {
			return nil, p.errf("expected definition name in %s block, got %v", keyword, p.tok.Kind)
		}
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != TokEqEq {
			return nil, p.errf("expected '==' after name %q in %s block", name, keyword)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.parseClauseBody(terminatorIsEnd)
		if err != nil {
			return nil, err
		}
		block.Clauses = append(block.Clauses, DefineClause{Name: name, Body: body})

		switch {
		case p.tok.Kind == TokSemi:
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		case !terminatorIsEnd && p.tok.Kind == TokDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return block, nil
		case terminatorIsEnd && p.tok.Kind == TokIdent && p.tok.Text == "END":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return block, nil
		default:
			return nil, p.errf("expected ';' or block terminator in %s block, got %v", keyword, p.tok.Kind)
		}
	}
}

// parseClauseBody consumes terms for one clause, stopping (without
// consuming) at ';', the block terminator, or EOF.
func (p *Parser) parseClauseBody(terminatorIsEnd bool) (*List, error) {
	var vs []Value
	for {
		switch {
		case p.tok.Kind == TokEOF:
			return nil, p.errf("unexpected end of input inside definition body")
		case p.tok.Kind == TokSemi:
			return buildList(vs, false), nil
		case !terminatorIsEnd && p.tok.Kind == TokDot:
			return buildList(vs, false), nil
		case terminatorIsEnd && p.tok.Kind == TokIdent && p.tok.Text == "END":
			return buildList(vs, false), nil
		}
		v, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
}

// parseTerm parses one literal value or symbol reference. Bracketed
// aggregates recurse through parseBracketLiteral/parseSetLiteral; every
// other token maps directly to a scalar Value or a *Sym term.
func (p *Parser) parseTerm() (Value, error) {
	tok := p.tok
	switch tok.Kind {
	case TokInt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Int64(tok.IVal), nil
	case TokFloat:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Float64(tok.FVal), nil
	case TokChar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Char(tok.CVal), nil
	case TokString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NewStr(tok.Text), nil
	case TokDot:
		// Outside a definition body, '.' is the print-TOS primitive's name
		// rather than a terminator.
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NewSym("."), nil
	case TokLBracket:
		return p.parseBracketLiteral()
	case TokLBrace:
		return p.parseSetLiteral()
	case TokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NewSym(tok.Text), nil
	default:
		return nil, p.errf("unexpected token %v", tok.Kind)
	}
}

// parseBracketLiteral parses [...]. Its elements are themselves terms
// (literals or symbols, including further nested brackets), stored
// verbatim as the LIST's payload; whether a use site treats the result as
// data or as a quotation is decided dynamically by the consuming
// combinator (AsQuotation/AsListValue), not by the parser.
func (p *Parser) parseBracketLiteral() (Value, error) {
	if err := p.advance(); err != nil { // consume [
		return nil, err
	}
	var vs []Value
	for p.tok.Kind != TokRBracket {
		if p.tok.Kind == TokEOF {
			return nil, p.errf("unterminated [ ... ] literal")
		}
		v, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	if err := p.advance(); err != nil { // consume ]
		return nil, err
	}
	return buildList(vs, false), nil
}

// parseSetLiteral parses {...}, a literal SET of small non-negative
// integers packed into a 64-bit mask.
func (p *Parser) parseSetLiteral() (Value, error) {
	if err := p.advance(); err != nil { // consume {
		return nil, err
	}
	var mask Set64
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind == TokEOF {
			return nil, p.errf("unterminated { ... } literal")
		}
		if p.tok.Kind != TokInt {
			return nil, p.errf("set literal elements must be integers, got %v", p.tok.Kind)
		}
		n := p.tok.IVal
		if n < 0 || n > 63 {
			return nil, NewDomainError("set literal", "element %d out of range 0..63", n)
		}
		mask |= Set64(1) << uint(n)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil { // consume }
		return nil, err
	}
	return mask, nil
}
