package schema

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/viant/afs"

	"github.com/thriftcall/thriftcall/thrift/typedesc"
)

// Load parses the Thrift IDL document at URL plus every transitively included
// file and returns the populated index.  Include directives resolve against
// the including file's directory first, then against includeDirs.  Files are
// fetched through afs, so any URL scheme afs supports works as a schema
// source.
func Load(ctx context.Context, URL string, includeDirs ...string) (*Index, error) {
	p := &parser{fs: afs.New(), includeDirs: includeDirs, index: NewIndex(), visited: map[string]bool{}}
	if err := p.load(ctx, URL); err != nil {
		return nil, err
	}
	return p.index, nil
}

// ParseSource parses a single IDL document under the given namespace.  It is
// mostly useful for tests and embedded schemas; include directives require
// Load.
func ParseSource(namespace, source string) (*Index, error) {
	p := &parser{index: NewIndex()}
	if err := p.parseSource(context.Background(), namespace, source); err != nil {
		return nil, err
	}
	return p.index, nil
}

type parser struct {
	fs          afs.Service
	includeDirs []string
	index       *Index
	visited     map[string]bool
	base        string
}

func (p *parser) load(ctx context.Context, URL string) error {
	if p.visited[URL] {
		return nil
	}
	p.visited[URL] = true
	data, err := p.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("load schema %q: %w", URL, err)
	}
	prev := p.base
	p.base = path.Dir(URL)
	err = p.parseSource(ctx, namespaceOf(URL), string(data))
	p.base = prev
	if err != nil {
		return fmt.Errorf("%s: %w", URL, err)
	}
	return nil
}

// namespaceOf derives the qualification namespace from the file name, e.g.
// "idl/shared.thrift" -> "shared".
func namespaceOf(URL string) string {
	name := path.Base(URL)
	return strings.TrimSuffix(name, path.Ext(name))
}

func (p *parser) parseSource(ctx context.Context, namespace, source string) error {
	l := newLexer(source)
	for {
		tok := l.next()
		if tok.kind == tokEOF {
			return nil
		}
		if tok.kind != tokIdent {
			return tok.errorf("unexpected token %q", tok.text)
		}
		var err error
		switch tok.text {
		case "include":
			err = p.parseInclude(ctx, l)
		case "cpp_include":
			l.next()
		case "namespace":
			l.next() // scope
			l.next() // identifier
		case "typedef":
			err = p.parseTypedef(l, namespace)
		case "const":
			err = p.parseConst(l, namespace)
		case "enum", "senum":
			err = p.parseEnum(l, namespace)
		case "struct", "union", "exception":
			err = p.parseStruct(l, namespace)
		case "service":
			err = p.parseService(l, namespace)
		default:
			return tok.errorf("unexpected keyword %q", tok.text)
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) parseInclude(ctx context.Context, l *lexer) error {
	tok := l.next()
	if tok.kind != tokString {
		return tok.errorf("include expects a quoted path, got %q", tok.text)
	}
	if p.fs == nil {
		return tok.errorf("include %q requires a file loader, use schema.Load", tok.text)
	}
	var candidates []string
	if strings.Contains(tok.text, "://") || path.IsAbs(tok.text) {
		candidates = append(candidates, tok.text)
	} else {
		if p.base != "" {
			candidates = append(candidates, path.Join(p.base, tok.text))
		}
		for _, dir := range p.includeDirs {
			candidates = append(candidates, path.Join(dir, tok.text))
		}
		candidates = append(candidates, tok.text)
	}
	for _, candidate := range candidates {
		if ok, _ := p.fs.Exists(ctx, candidate); ok {
			return p.load(ctx, candidate)
		}
	}
	return tok.errorf("include %q: no candidate exists in %v", tok.text, candidates)
}

func (p *parser) parseTypedef(l *lexer, namespace string) error {
	target, err := p.parseType(l, namespace)
	if err != nil {
		return err
	}
	alias, err := expectIdent(l)
	if err != nil {
		return err
	}
	p.index.AddTypedef(namespace+"."+alias.text, target)
	skipSeparator(l)
	return nil
}

func (p *parser) parseConst(l *lexer, namespace string) error {
	if _, err := p.parseType(l, namespace); err != nil {
		return err
	}
	if _, err := expectIdent(l); err != nil {
		return err
	}
	if err := expectPunct(l, "="); err != nil {
		return err
	}
	if err := skipValue(l); err != nil {
		return err
	}
	skipSeparator(l)
	return nil
}

func (p *parser) parseEnum(l *lexer, namespace string) error {
	nameTok, err := expectIdent(l)
	if err != nil {
		return err
	}
	if err := expectPunct(l, "{"); err != nil {
		return err
	}
	enum := NewEnum(namespace, nameTok.text)
	next := int64(0)
	for {
		tok := l.next()
		if tok.kind == tokPunct && tok.text == "}" {
			break
		}
		if tok.kind == tokString { // senum entries are plain strings
			skipSeparator(l)
			continue
		}
		if tok.kind != tokIdent {
			return tok.errorf("expected enum item, got %q", tok.text)
		}
		if peeked := l.peek(); peeked.kind == tokPunct && peeked.text == "=" {
			l.next()
			numTok := l.next()
			value, err := strconv.ParseInt(numTok.text, 0, 64)
			if err != nil {
				return numTok.errorf("invalid enum ordinal %q: %v", numTok.text, err)
			}
			next = value
		}
		enum.Add(tok.text, next)
		next++
		skipSeparator(l)
	}
	p.index.AddEnum(enum)
	return nil
}

func (p *parser) parseStruct(l *lexer, namespace string) error {
	nameTok, err := expectIdent(l)
	if err != nil {
		return err
	}
	if peeked := l.peek(); peeked.kind == tokIdent && peeked.text == "xsd_all" {
		l.next()
	}
	if err := expectPunct(l, "{"); err != nil {
		return err
	}
	s := NewStruct(namespace, nameTok.text)
	if err := p.parseFieldBlock(l, namespace, "}", s.Add); err != nil {
		return err
	}
	p.index.AddStruct(s)
	return nil
}

func (p *parser) parseService(l *lexer, namespace string) error {
	nameTok, err := expectIdent(l)
	if err != nil {
		return err
	}
	svc := NewServiceDef(namespace, nameTok.text)
	if peeked := l.peek(); peeked.kind == tokIdent && peeked.text == "extends" {
		l.next()
		parent, err := expectIdent(l)
		if err != nil {
			return err
		}
		svc.Extends = p.qualify(namespace, parent.text)
	}
	if err := expectPunct(l, "{"); err != nil {
		return err
	}
	for {
		tok := l.peek()
		if tok.kind == tokPunct && tok.text == "}" {
			l.next()
			break
		}
		if tok.kind == tokEOF {
			return tok.errorf("unterminated service %q", svc.Name)
		}
		oneway := false
		if tok.kind == tokIdent && tok.text == "oneway" {
			l.next()
			oneway = true
		}
		returnType, err := p.parseType(l, namespace)
		if err != nil {
			return err
		}
		methodTok, err := expectIdent(l)
		if err != nil {
			return err
		}
		if err := expectPunct(l, "("); err != nil {
			return err
		}
		method := NewMethod(methodTok.text, returnType)
		method.Oneway = oneway
		if err := p.parseFieldBlock(l, namespace, ")", method.Add); err != nil {
			return err
		}
		if peeked := l.peek(); peeked.kind == tokIdent && peeked.text == "throws" {
			l.next()
			if err := expectPunct(l, "("); err != nil {
				return err
			}
			if err := p.parseFieldBlock(l, namespace, ")", func(*Field) {}); err != nil {
				return err
			}
		}
		svc.Add(method)
		skipSeparator(l)
	}
	p.index.AddService(svc)
	return nil
}

// parseFieldBlock reads `id: requiredness type name = default` entries until
// the closing token, handing each parsed field to add.
func (p *parser) parseFieldBlock(l *lexer, namespace, closer string, add func(*Field)) error {
	for {
		tok := l.peek()
		if tok.kind == tokPunct && tok.text == closer {
			l.next()
			return nil
		}
		if tok.kind == tokEOF {
			return tok.errorf("unterminated field block, expected %q", closer)
		}
		field := &Field{}
		if tok.kind == tokNumber {
			l.next()
			id, err := strconv.Atoi(tok.text)
			if err != nil {
				return tok.errorf("invalid field id %q", tok.text)
			}
			field.ID = id
			if err := expectPunct(l, ":"); err != nil {
				return err
			}
		}
		if peeked := l.peek(); peeked.kind == tokIdent && (peeked.text == "required" || peeked.text == "optional") {
			l.next()
			field.Required = peeked.text == "required"
		}
		fieldType, err := p.parseType(l, namespace)
		if err != nil {
			return err
		}
		nameTok, err := expectIdent(l)
		if err != nil {
			return err
		}
		field.Type = fieldType
		field.Name = nameTok.text
		if peeked := l.peek(); peeked.kind == tokPunct && peeked.text == "=" {
			l.next()
			field.Default, err = scanDefault(l)
			if err != nil {
				return err
			}
		}
		add(field)
		skipSeparator(l)
	}
}

// parseType reads one type reference, rendering generics back into their
// canonical string form and qualifying bare user-defined names with the
// current file's namespace.
func (p *parser) parseType(l *lexer, namespace string) (string, error) {
	tok := l.next()
	if tok.kind != tokIdent {
		return "", tok.errorf("expected type, got %q", tok.text)
	}
	switch tok.text {
	case "list", "set":
		if err := expectPunct(l, "<"); err != nil {
			return "", err
		}
		elem, err := p.parseType(l, namespace)
		if err != nil {
			return "", err
		}
		if err := expectPunct(l, ">"); err != nil {
			return "", err
		}
		return tok.text + "<" + elem + ">", nil
	case "map":
		if err := expectPunct(l, "<"); err != nil {
			return "", err
		}
		key, err := p.parseType(l, namespace)
		if err != nil {
			return "", err
		}
		if err := expectPunct(l, ","); err != nil {
			return "", err
		}
		value, err := p.parseType(l, namespace)
		if err != nil {
			return "", err
		}
		if err := expectPunct(l, ">"); err != nil {
			return "", err
		}
		return "map<" + key + "," + value + ">", nil
	}
	return p.qualify(namespace, tok.text), nil
}

func (p *parser) qualify(namespace, name string) string {
	if name == "void" || typedesc.IsPrimitive(name) {
		return name
	}
	if strings.Contains(name, ".") {
		return name
	}
	return namespace + "." + name
}

func expectIdent(l *lexer) (token, error) {
	tok := l.next()
	if tok.kind != tokIdent {
		return tok, tok.errorf("expected identifier, got %q", tok.text)
	}
	return tok, nil
}

func expectPunct(l *lexer, text string) error {
	tok := l.next()
	if tok.kind != tokPunct || tok.text != text {
		return tok.errorf("expected %q, got %q", text, tok.text)
	}
	return nil
}

// skipSeparator consumes an optional ',' or ';' list separator.
func skipSeparator(l *lexer) {
	if tok := l.peek(); tok.kind == tokPunct && (tok.text == "," || tok.text == ";") {
		l.next()
	}
}

// skipValue discards one const value, matching nested [] and {} literals.
func skipValue(l *lexer) error {
	tok := l.next()
	if tok.kind != tokPunct || (tok.text != "[" && tok.text != "{") {
		return nil
	}
	open := tok.text
	closer := "]"
	if open == "{" {
		closer = "}"
	}
	depth := 1
	for depth > 0 {
		tok = l.next()
		if tok.kind == tokEOF {
			return tok.errorf("unterminated const value")
		}
		if tok.kind == tokPunct {
			switch tok.text {
			case open:
				depth++
			case closer:
				depth--
			}
		}
	}
	return nil
}

// scanDefault captures scalar field defaults and discards composite ones.
func scanDefault(l *lexer) (any, error) {
	tok := l.peek()
	if tok.kind == tokPunct {
		return nil, skipValue(l)
	}
	l.next()
	switch tok.kind {
	case tokNumber:
		if value, err := strconv.ParseInt(tok.text, 0, 64); err == nil {
			return value, nil
		}
		if value, err := strconv.ParseFloat(tok.text, 64); err == nil {
			return value, nil
		}
		return tok.text, nil
	case tokString, tokIdent:
		return tok.text, nil
	}
	return nil, tok.errorf("unexpected default value %q", tok.text)
}
