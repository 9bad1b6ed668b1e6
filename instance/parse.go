package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies an on-disk instance layout.
type Format int

const (
	// FormatBudgetFirst: the budget, then "cost value" pairs until EOF.
	FormatBudgetFirst Format = iota

	// FormatCounted: "n budget", then n "value cost" pairs, then an optional
	// trailing vector of n 0/1 flags describing a known optimal selection.
	FormatCounted

	// FormatUnbounded: "n budget", then n "cost value" pairs, then an optional
	// trailing known optimal value.
	FormatUnbounded

	// FormatYAML: a YAML document with budget, items and optional optimum.
	FormatYAML
)

var formatNames = map[Format]string{
	FormatBudgetFirst: "budget-first",
	FormatCounted:     "counted",
	FormatUnbounded:   "unbounded",
	FormatYAML:        "yaml",
}

// String returns the canonical format name.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name. Accepted aliases: "tp" for
// budget-first, "classic" for counted, "yml" for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "budget-first", "tp":
		return FormatBudgetFirst, nil
	case "counted", "classic":
		return FormatCounted, nil
	case "unbounded":
		return FormatUnbounded, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// DetectFormat guesses a format from a file extension: .yaml/.yml → YAML,
// .ukp → unbounded, .kp → counted, anything else → budget-first.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".ukp":
		return FormatUnbounded
	case ".kp":
		return FormatCounted
	default:
		return FormatBudgetFirst
	}
}

// Parsed is an instance read from text together with the optional known
// optimum carried by some formats. The optimum is never used by a solver; it
// exists for external verification only.
type Parsed struct {
	Instance   *Instance
	Optimum    int64
	HasOptimum bool
}

// ParseFile opens path and parses it with format f.
func ParseFile(path string, f Format) (*Parsed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := Parse(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse reads an instance in format f from r.
//
// Blank lines and lines starting with '#' are ignored by the text formats.
// Errors wrap ErrMalformed (with line context), ErrCountMismatch, or the
// validation sentinels from Instance.Validate.
func Parse(r io.Reader, f Format) (*Parsed, error) {
	switch f {
	case FormatBudgetFirst:
		return parseBudgetFirst(newTokenizer(r))
	case FormatCounted:
		return parseCounted(newTokenizer(r))
	case FormatUnbounded:
		return parseUnbounded(newTokenizer(r))
	case FormatYAML:
		return parseYAML(r)
	default:
		return nil, ErrUnknownFormat
	}
}

// tokenizer yields whitespace separated int64 tokens with line tracking.
type tokenizer struct {
	sc     *bufio.Scanner
	fields []string
	line   int
	err    error
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &tokenizer{sc: sc}
}

// next returns the next integer token. ok is false at EOF or on error;
// t.err distinguishes the two.
func (t *tokenizer) next() (int64, bool) {
	for len(t.fields) == 0 {
		if !t.sc.Scan() {
			t.err = t.sc.Err()
			return 0, false
		}
		t.line++
		line := strings.TrimSpace(t.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t.fields = strings.Fields(line)
	}
	tok := t.fields[0]
	t.fields = t.fields[1:]
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		t.err = fmt.Errorf("line %d: token %q: %w", t.line, tok, ErrMalformed)
		return 0, false
	}

	return v, true
}

// must reads a required token; what names it in the error.
func (t *tokenizer) must(what string) (int64, error) {
	v, ok := t.next()
	if ok {
		return v, nil
	}
	if t.err != nil {
		return 0, t.err
	}

	return 0, fmt.Errorf("line %d: missing %s: %w", t.line, what, ErrMalformed)
}

func parseBudgetFirst(t *tokenizer) (*Parsed, error) {
	budget, err := t.must("budget")
	if err != nil {
		return nil, err
	}
	var items []Item
	for {
		cost, ok := t.next()
		if !ok {
			if t.err != nil {
				return nil, t.err
			}
			break
		}
		value, err := t.must("item value")
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Value: value, Cost: cost})
	}
	inst, err := New(budget, items...)
	if err != nil {
		return nil, err
	}

	return &Parsed{Instance: inst}, nil
}

// maxPrealloc caps the item slice reserved from a declared count.
const maxPrealloc = 1 << 16

// readCountedHeader reads "n budget" and n pairs. valueFirst selects the
// column order of each pair.
func readCountedHeader(t *tokenizer, valueFirst bool) (int64, []Item, error) {
	n, err := t.must("item count")
	if err != nil {
		return 0, nil, err
	}
	if n < 0 {
		return 0, nil, fmt.Errorf("line %d: item count %d: %w", t.line, n, ErrMalformed)
	}
	budget, err := t.must("budget")
	if err != nil {
		return 0, nil, err
	}
	// The declared count is untrusted; append grows past the cap if needed.
	items := make([]Item, 0, min(n, maxPrealloc))
	var a, b int64
	for i := int64(0); i < n; i++ {
		if a, err = t.must("item"); err != nil {
			if errors.Is(err, ErrMalformed) && t.err == nil {
				return 0, nil, fmt.Errorf("declared %d items, read %d: %w", n, i, ErrCountMismatch)
			}
			return 0, nil, err
		}
		if b, err = t.must("item"); err != nil {
			return 0, nil, err
		}
		if valueFirst {
			items = append(items, Item{Value: a, Cost: b})
		} else {
			items = append(items, Item{Value: b, Cost: a})
		}
	}

	return budget, items, nil
}

func parseCounted(t *tokenizer) (*Parsed, error) {
	budget, items, err := readCountedHeader(t, true)
	if err != nil {
		return nil, err
	}
	inst, err := New(budget, items...)
	if err != nil {
		return nil, err
	}
	p := &Parsed{Instance: inst}

	// Optional taken vector; the optimum is the value of the flagged items.
	var opt int64
	for i := 0; ; i++ {
		flag, ok := t.next()
		if !ok {
			if t.err != nil {
				return nil, t.err
			}
			if i > 0 {
				if i != len(items) {
					return nil, fmt.Errorf("solution vector has %d flags for %d items: %w", i, len(items), ErrCountMismatch)
				}
				p.Optimum, p.HasOptimum = opt, true
			}
			return p, nil
		}
		if i >= len(items) || (flag != 0 && flag != 1) {
			return nil, fmt.Errorf("line %d: solution flag %d: %w", t.line, flag, ErrMalformed)
		}
		opt += flag * items[i].Value
	}
}

func parseUnbounded(t *tokenizer) (*Parsed, error) {
	budget, items, err := readCountedHeader(t, false)
	if err != nil {
		return nil, err
	}
	inst, err := New(budget, items...)
	if err != nil {
		return nil, err
	}
	p := &Parsed{Instance: inst}
	if opt, ok := t.next(); ok {
		p.Optimum, p.HasOptimum = opt, true
	} else if t.err != nil {
		return nil, t.err
	}

	return p, nil
}

// yamlDoc is the YAML document shape.
type yamlDoc struct {
	Budget  int64      `yaml:"budget"`
	Items   []yamlItem `yaml:"items"`
	Optimum *int64     `yaml:"optimum,omitempty"`
}

type yamlItem struct {
	Value int64 `yaml:"value"`
	Cost  int64 `yaml:"cost"`
}

func parseYAML(r io.Reader) (*Parsed, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml: %v: %w", err, ErrMalformed)
	}
	items := make([]Item, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = Item(it)
	}
	inst, err := New(doc.Budget, items...)
	if err != nil {
		return nil, err
	}
	p := &Parsed{Instance: inst}
	if doc.Optimum != nil {
		p.Optimum, p.HasOptimum = *doc.Optimum, true
	}

	return p, nil
}

// Write serialises p in format f. The known optimum is emitted when the
// format can carry it: the unbounded and YAML formats write the value, the
// counted format cannot represent a bare value and omits it.
func Write(w io.Writer, p *Parsed, f Format) error {
	inst := p.Instance
	bw := bufio.NewWriter(w)
	switch f {
	case FormatBudgetFirst:
		fmt.Fprintf(bw, "%d\n", inst.budget)
		for _, it := range inst.items {
			fmt.Fprintf(bw, "%d %d\n", it.Cost, it.Value)
		}
	case FormatCounted:
		fmt.Fprintf(bw, "%d %d\n", len(inst.items), inst.budget)
		for _, it := range inst.items {
			fmt.Fprintf(bw, "%d %d\n", it.Value, it.Cost)
		}
	case FormatUnbounded:
		fmt.Fprintf(bw, "%d %d\n", len(inst.items), inst.budget)
		for _, it := range inst.items {
			fmt.Fprintf(bw, "%d %d\n", it.Cost, it.Value)
		}
		if p.HasOptimum {
			fmt.Fprintf(bw, "%d\n", p.Optimum)
		}
	case FormatYAML:
		doc := yamlDoc{Budget: inst.budget, Items: make([]yamlItem, len(inst.items))}
		for i, it := range inst.items {
			doc.Items[i] = yamlItem(it)
		}
		if p.HasOptimum {
			opt := p.Optimum
			doc.Optimum = &opt
		}
		enc := yaml.NewEncoder(bw)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		return ErrUnknownFormat
	}

	return bw.Flush()
}
