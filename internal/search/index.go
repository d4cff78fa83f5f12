// Package search provides a small, deterministic, concurrency-safe in-memory
// index over the vegetable catalog, used by order-sheet pickers to find a
// vegetable by partial name ("tom" -> "Tomatoes") or by its seller.
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options for stop words, prefix matching and size caps
//   - Unicode case folding via golang.org/x/text/cases
//   - Immutable after construction (safe for concurrent use)
//   - Deterministic scoring and sorting (stable order for ties)
//
// Scoring is Jaccard similarity between the query token set Q and an entry's
// token set E, where a query token also matches any entry token it prefixes:
// score = |Q ∩ E| / |Q ∪ E|.
package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// Hit is a ranked catalog entry with its similarity score.
type Hit struct {
	VegetableID string  `json:"vegetable_id"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	SellerID    string  `json:"seller_id"`
	SellerName  string  `json:"seller_name,omitempty"`
	Score       float64 `json:"score"`
}

// Index is the minimal interface implemented by catalog indices.
type Index interface {
	TopK(query string, k int) []Hit
	Len() int
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords   map[string]struct{}
	maxDocs     int
	prefixMatch bool
	minPrefix   int
}

func defaultConfig() config {
	return config{
		prefixMatch: true,
		minPrefix:   2,
	}
}

// WithStopwords drops the given words from both entries and queries.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps how many catalog entries are indexed.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// WithPrefixMatch toggles prefix matching. minRunes is the shortest query
// token allowed to match by prefix; shorter tokens must match exactly.
func WithPrefixMatch(enabled bool, minRunes int) Option {
	return func(c *config) {
		c.prefixMatch = enabled
		if minRunes > 0 {
			c.minPrefix = minRunes
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	hit    Hit
	tokens map[string]struct{}
	tLen   int
}

type index struct {
	cfg  config
	docs []doc
}

// NewCatalogIndex indexes vegetables by their own name and the name of their
// seller. sellerNames maps seller id to display name and may be nil.
func NewCatalogIndex(vegetables []domain.Vegetable, sellerNames map[string]string, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	docs := make([]doc, 0, len(vegetables))
	for _, v := range vegetables {
		name := strings.TrimSpace(normalizeWhitespace(v.Name))
		if name == "" {
			continue
		}
		seller := sellerNames[v.SellerID]
		toks := tokenize(name+" "+seller, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		docs = append(docs, doc{
			hit: Hit{
				VegetableID: v.ID,
				Name:        name,
				Unit:        v.Unit,
				SellerID:    v.SellerID,
				SellerName:  seller,
			},
			tokens: toks,
			tLen:   len(toks),
		})
		if cfg.maxDocs > 0 && len(docs) >= cfg.maxDocs {
			break
		}
	}
	return &index{cfg: cfg, docs: docs}
}

func (i *index) Len() int { return len(i.docs) }

// TopK returns up to k best-matching catalog entries.
func (i *index) TopK(q string, k int) []Hit {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 10
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	buf := make([]Hit, 0, min(k*4, len(i.docs)))
	for _, d := range i.docs {
		over := i.overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		union := float64(qLen + d.tLen - over)
		if union <= 0 {
			continue
		}
		h := d.hit
		h.Score = float64(over) / union
		buf = append(buf, h)
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		la, lb := utf8.RuneCountInString(buf[a].Name), utf8.RuneCountInString(buf[b].Name)
		if la != lb {
			return la < lb
		}
		if buf[a].Name != buf[b].Name {
			return buf[a].Name < buf[b].Name
		}
		return buf[a].VegetableID < buf[b].VegetableID
	})

	if k > len(buf) {
		k = len(buf)
	}
	return buf[:k]
}

// overlap counts query tokens that match an entry token exactly or, when
// enabled, as a prefix.
func (i *index) overlap(q, e map[string]struct{}) int {
	n := 0
	for qt := range q {
		if _, ok := e[qt]; ok {
			n++
			continue
		}
		if !i.cfg.prefixMatch || utf8.RuneCountInString(qt) < i.cfg.minPrefix {
			continue
		}
		for et := range e {
			if strings.HasPrefix(et, qt) {
				n++
				break
			}
		}
	}
	return n
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

// fold lower-cases s for matching. Casers are stateful, so each call gets
// its own.
func fold(s string) string { return cases.Fold().String(s) }

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(fold(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
