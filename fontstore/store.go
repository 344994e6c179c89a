package fontstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/fontsieve/internal/fontload"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/sched"
	"github.com/npillmayer/fontsieve/subset"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownFont is returned for font identities not known to a store.
var ErrUnknownFont = errors.New("unknown font")

// Upload is a font file handed to a store.
type Upload struct {
	FileName string
	MIMEType string // may be empty
	Data     []byte
}

// Font is a font of a store.
type Font struct {
	ID        string
	Name      string // display name
	FileName  string
	Size      int64
	Extension string // e.g. "woff2", may be empty
	Mask      subset.Mask
	data      []byte
}

// Store is a sorted collection of fonts with cached summaries.
// It is safe for concurrent use, except for the masks of its fonts.
type Store struct {
	sync.Mutex
	sched    *sched.Scheduler
	collator *collate.Collator
	fonts    []*Font
	byID     map[string]*Font
	parsed   map[string]*introspect.ParsedFont
	failed   map[string]error
	pending  map[string]*sched.Promise
	current  string
}

// Option configures a Store.
type Option func(*Store)

// WithLanguage sets the language for sorting font names. The default is
// the root collation order.
func WithLanguage(tag language.Tag) Option {
	return func(st *Store) {
		st.collator = collate.New(tag, collate.IgnoreCase)
	}
}

// New creates a store which parses fonts with s.
func New(s *sched.Scheduler, opts ...Option) *Store {
	st := &Store{
		sched:    s,
		collator: collate.New(language.Und, collate.IgnoreCase),
		byID:     make(map[string]*Font),
		parsed:   make(map[string]*introspect.ParsedFont),
		failed:   make(map[string]error),
		pending:  make(map[string]*sched.Promise),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Identity derives the identity of a font file from its name and content.
func Identity(fileName string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(fileName))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Add adds fonts to the store. Uploads with a file name already present in the
// store are skipped. A parse job is enqueued for every font added.
// Add returns the fonts added, in upload order.
func (st *Store) Add(uploads ...Upload) []*Font {
	st.Lock()
	defer st.Unlock()
	known := make(map[string]bool, len(st.fonts))
	for _, f := range st.fonts {
		known[f.FileName] = true
	}
	added := make([]*Font, 0, len(uploads))
	for _, u := range uploads {
		if known[u.FileName] {
			tracer().Debugf("skipping font file %s, already present", u.FileName)
			continue
		}
		known[u.FileName] = true
		f := &Font{
			ID:        Identity(u.FileName, u.Data),
			Name:      NormalizeName(u.FileName),
			FileName:  u.FileName,
			Size:      int64(len(u.Data)),
			Extension: ExtensionFromFile(u.FileName, u.MIMEType),
			Mask:      subset.Mask{},
			data:      u.Data,
		}
		if f.Extension == "" {
			f.Extension = fontload.Extension(u.Data)
		}
		st.fonts = append(st.fonts, f)
		st.byID[f.ID] = f
		added = append(added, f)
		st.enqueue(f)
	}
	st.sort()
	tracer().Infof("added %d fonts, store holds %d fonts", len(added), len(st.fonts))
	return added
}

// AddFiles loads font files and adds them to the store.
func (st *Store) AddFiles(paths ...string) ([]*Font, error) {
	uploads := make([]Upload, 0, len(paths))
	for _, p := range paths {
		ff, err := fontload.LoadNamed(p)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, Upload{FileName: ff.Name, Data: ff.Binary})
	}
	return st.Add(uploads...), nil
}

// sort orders fonts by display name, then extension. st must be locked.
func (st *Store) sort() {
	sort.SliceStable(st.fonts, func(i, j int) bool {
		a, b := st.fonts[i], st.fonts[j]
		if c := st.collator.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return st.collator.CompareString(a.Extension, b.Extension) < 0
	})
}

// enqueue starts parsing a font. st must be locked.
func (st *Store) enqueue(f *Font) *sched.Promise {
	p := st.sched.Enqueue(f.ID, sched.Bytes(f.data))
	st.pending[f.ID] = p
	go st.collect(f.ID, p)
	return p
}

// collect caches the result of a parse job.
func (st *Store) collect(id string, p *sched.Promise) {
	pf, err := p.ParsedFont()
	st.Lock()
	defer st.Unlock()
	delete(st.pending, id)
	if err != nil {
		st.failed[id] = err
		return
	}
	st.parsed[id] = pf
}

// Fonts returns the fonts of the store in display order.
func (st *Store) Fonts() []*Font {
	st.Lock()
	defer st.Unlock()
	return append([]*Font(nil), st.fonts...)
}

// Font returns the font with a given identity.
func (st *Store) Font(id string) (*Font, error) {
	st.Lock()
	defer st.Unlock()
	return st.font(id)
}

func (st *Store) font(id string) (*Font, error) {
	f, ok := st.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, id)
	}
	return f, nil
}

// Find looks up a font by identity, display name or file name.
func (st *Store) Find(ref string) (*Font, error) {
	st.Lock()
	defer st.Unlock()
	if f, ok := st.byID[ref]; ok {
		return f, nil
	}
	for _, f := range st.fonts {
		if f.FileName == ref || st.collator.CompareString(f.Name, ref) == 0 {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFont, ref)
}

// Select makes a font the current one. If the font is waiting to be parsed,
// its job is moved to the front of the queue.
func (st *Store) Select(id string) (*Font, error) {
	st.Lock()
	defer st.Unlock()
	f, err := st.font(id)
	if err != nil {
		return nil, err
	}
	st.current = id
	if _, ok := st.pending[id]; ok && st.sched.Reprioritize(id) {
		tracer().Debugf("parsing of selected font %s moved up", f.Name)
	}
	return f, nil
}

// Current returns the selected font.
func (st *Store) Current() (*Font, bool) {
	st.Lock()
	defer st.Unlock()
	f, ok := st.byID[st.current]
	return f, ok
}

// Summary returns the cached summary of a font, if it has been parsed.
func (st *Store) Summary(id string) (*introspect.ParsedFont, bool) {
	st.Lock()
	defer st.Unlock()
	pf, ok := st.parsed[id]
	return pf, ok
}

// Parsed returns the summary of a font, waiting for it to be parsed if necessary.
// Summaries are cached, as are parse errors.
func (st *Store) Parsed(ctx context.Context, id string) (*introspect.ParsedFont, error) {
	st.Lock()
	f, err := st.font(id)
	if err != nil {
		st.Unlock()
		return nil, err
	}
	if pf, ok := st.parsed[id]; ok {
		st.Unlock()
		return pf, nil
	}
	if err, ok := st.failed[id]; ok {
		st.Unlock()
		return nil, err
	}
	p, ok := st.pending[id]
	if !ok {
		p = st.enqueue(f)
	}
	st.Unlock()
	return p.Await(ctx)
}

// Report estimates the effect of a font's mask.
func (st *Store) Report(ctx context.Context, id string) (subset.Report, error) {
	pf, err := st.Parsed(ctx, id)
	if err != nil {
		return subset.Report{}, err
	}
	f, err := st.Font(id)
	if err != nil {
		return subset.Report{}, err
	}
	return subset.Summarize(pf, f.Mask, f.Size), nil
}
