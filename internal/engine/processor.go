package engine

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/intern"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

const defaultSortKeyCacheSize = 4096

// LocatorInput is one locator of a cite, as supplied by the host.
type LocatorInput struct {
	// Label is the locator type ("page", "chapter", ...).
	Label string
	Value string
}

// CiteInput is one cite of a cluster, as supplied by the host. A RefID
// with no matching reference renders as an empty cite.
type CiteInput struct {
	RefID    string
	Prefix   string
	Suffix   string
	Locators []LocatorInput
}

// OrderEntry places one cluster in the document. A nil Note marks an
// in-text cluster; note numbers must not decrease along the order.
type OrderEntry struct {
	ID   string
	Note *uint32
}

// refInput is a reference with the revision of its last replacement.
type refInput struct {
	ref       *reference.Reference
	changedAt Revision
}

// clusterInput is a cluster with the revision of its last replacement.
type clusterInput struct {
	cluster   *citation.Cluster
	changedAt Revision
}

// sortKeyCacheKey identifies one reference's sort-key vector. The
// revisions are part of the key, so stale vectors age out of the LRU
// instead of needing explicit invalidation.
type sortKeyCacheKey struct {
	ref     intern.Atom
	refAt   Revision
	styleAt Revision
	inBib   bool
}

// Processor is the citation database. It is not safe for concurrent
// use; all access goes through one goroutine.
type Processor struct {
	log     *slog.Logger
	clock   *Clock
	gen     BatchTokenGenerator
	fetcher locale.Fetcher
	out     format.Format
	fmtOpts format.FormatOptions

	refAtoms     *intern.Table
	clusterAtoms *intern.Table

	lastChanged [durabilityCount]Revision

	// inputs
	styleText []byte
	styleAt   Revision
	refs      map[intern.Atom]*refInput
	clusters  map[citation.ClusterID]*clusterInput
	order     []orderedCluster
	nextCite  citation.CiteID

	// derived
	styleVal   *style.Style
	styleErr   error
	styleBuilt Revision
	locales    map[string]*locale.Merged
	sortKeys   *lru.Cache[sortKeyCacheKey, []string]
	doc        *document
	docBuilt   Revision

	// pending collects clusters whose output changed since the last
	// BatchedUpdates drain.
	pending map[citation.ClusterID]string
}

type orderedCluster struct {
	id   citation.ClusterID
	note *uint32
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor's logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithFormat selects the output format. The default is plain text.
func WithFormat(f format.Format) Option {
	return func(p *Processor) { p.out = f }
}

// WithFormatOptions sets the output options. The default enables link
// anchors, so DOI/PMID/PMCID/URL values hyperlink in formats that can.
func WithFormatOptions(o format.FormatOptions) Option {
	return func(p *Processor) { p.fmtOpts = o }
}

// WithLocaleFetcher supplies the locale file source. Without one, only
// in-style overrides and the built-in en-US data apply.
func WithLocaleFetcher(f locale.Fetcher) Option {
	return func(p *Processor) { p.fetcher = f }
}

// WithBatchTokens replaces the UpdateSummary batch id generator.
func WithBatchTokens(g BatchTokenGenerator) Option {
	return func(p *Processor) { p.gen = g }
}

// WithSortKeyCacheSize bounds the per-reference sort-key cache.
func WithSortKeyCacheSize(n int) Option {
	return func(p *Processor) {
		if n < 1 {
			n = defaultSortKeyCacheSize
		}
		cache, _ := lru.New[sortKeyCacheKey, []string](n)
		p.sortKeys = cache
	}
}

// New creates an empty processor.
func New(opts ...Option) *Processor {
	cache, _ := lru.New[sortKeyCacheKey, []string](defaultSortKeyCacheSize)
	p := &Processor{
		log:          slog.Default(),
		clock:        NewClock(),
		gen:          UUIDv7Generator{},
		out:          format.PlainText{},
		fmtOpts:      format.FormatOptions{LinkAnchors: true},
		refAtoms:     intern.NewTable(),
		clusterAtoms: intern.NewTable(),
		refs:         make(map[intern.Atom]*refInput),
		clusters:     make(map[citation.ClusterID]*clusterInput),
		locales:      make(map[string]*locale.Merged),
		sortKeys:     cache,
		pending:      make(map[citation.ClusterID]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// touch records an input change of the given durability.
func (p *Processor) touch(d Durability) Revision {
	rev := p.clock.Next()
	p.lastChanged[d] = rev
	return rev
}

// SetStyle replaces the style text. Compile diagnostics are returned
// en bloc; on failure the processor keeps the invalid text and every
// query fails with STYLE_INVALID until a valid style is set.
func (p *Processor) SetStyle(text []byte) error {
	rev := p.touch(DurabilityHigh)
	p.styleText = text
	p.styleAt = rev

	s, err := style.Parse(text, style.ParseOptions{})
	p.styleVal, p.styleErr = s, err
	p.styleBuilt = rev
	// locale merges layer in-style overrides, so they go stale with
	// the style
	p.locales = make(map[string]*locale.Merged)
	if err != nil {
		p.log.Error("style rejected", "error", err)
		return err
	}
	p.log.Info("style set", "title", s.Info.Title, "class", s.Class)
	return nil
}

// InsertReference adds or replaces one reference, keyed by its id
// string. The reference's interned id is rewritten to this processor's
// table.
func (p *Processor) InsertReference(ref *reference.Reference) {
	rev := p.touch(DurabilityMedium)
	ref.ID = p.refAtoms.Intern(ref.IDStr)
	p.refs[ref.ID] = &refInput{ref: ref, changedAt: rev}
}

// InsertReferenceJSON parses one CSL-JSON reference and inserts it.
// Field errors degrade the affected fields to empty without rejecting
// the reference.
func (p *Processor) InsertReferenceJSON(data []byte) ([]reference.FieldError, error) {
	ref, fieldErrs, err := reference.ParseJSON(data, p.refAtoms)
	if err != nil {
		return nil, err
	}
	for _, fe := range fieldErrs {
		p.log.Warn("reference field dropped", "id", ref.IDStr, "error", fe.Error())
	}
	p.InsertReference(ref)
	return fieldErrs, nil
}

// ResetReferences replaces the whole reference set.
func (p *Processor) ResetReferences(refs []*reference.Reference) {
	rev := p.touch(DurabilityMedium)
	p.refs = make(map[intern.Atom]*refInput, len(refs))
	for _, ref := range refs {
		ref.ID = p.refAtoms.Intern(ref.IDStr)
		p.refs[ref.ID] = &refInput{ref: ref, changedAt: rev}
	}
}

// InsertCluster adds or replaces a cluster. Mode may be nil for plain
// rendering. The cluster takes part in the document once it appears in
// the cluster order; until then BuiltCluster renders it outside the
// flow.
func (p *Processor) InsertCluster(id string, cites []CiteInput, mode citation.ClusterMode) {
	rev := p.touch(DurabilityLow)
	cid := citation.ClusterID(p.clusterAtoms.Intern(id))
	p.clusters[cid] = &clusterInput{
		cluster: &citation.Cluster{
			ID:    cid,
			Cites: p.makeCites(cites),
			Mode:  mode,
		},
		changedAt: rev,
	}
}

func (p *Processor) makeCites(cites []CiteInput) []*citation.Cite {
	out := make([]*citation.Cite, 0, len(cites))
	for _, in := range cites {
		p.nextCite++
		c := &citation.Cite{
			ID:     p.nextCite,
			RefID:  p.refAtoms.Intern(in.RefID),
			Prefix: in.Prefix,
			Suffix: in.Suffix,
		}
		for _, l := range in.Locators {
			c.Locators = append(c.Locators, citation.Locator{
				Type:  l.Label,
				Value: numbers.ParseNumeric(l.Value, "and"),
			})
		}
		out = append(out, c)
	}
	return out
}

// SetClusterOrder replaces the document order. Every entry must name an
// inserted cluster; note numbers must not decrease.
func (p *Processor) SetClusterOrder(order []OrderEntry) error {
	resolved := make([]orderedCluster, 0, len(order))
	check := make([]citation.ClusterPosition, 0, len(order))
	for _, e := range order {
		a, ok := p.clusterAtoms.Lookup(e.ID)
		cid := citation.ClusterID(a)
		if !ok {
			return newUnknownCluster(e.ID)
		}
		if _, ok := p.clusters[cid]; !ok {
			return newUnknownCluster(e.ID)
		}
		resolved = append(resolved, orderedCluster{id: cid, note: e.Note})
		check = append(check, citation.ClusterPosition{ID: cid, Note: e.Note})
	}
	if _, err := citation.Renumber(check); err != nil {
		return &ProcessorError{Code: ErrCodeBadClusterOrder, Message: err.Error()}
	}
	p.touch(DurabilityLow)
	p.order = resolved
	return nil
}
