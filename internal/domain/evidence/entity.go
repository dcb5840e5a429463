package evidence

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrSourceUnavailable marks connectivity failures of an evidence source.
var ErrSourceUnavailable = errors.New("evidence source unavailable")

// Origin says how a document entered the pool.
type Origin string

const (
	OriginUpload    Origin = "upload"
	OriginArchive   Origin = "archive"
	OriginFileShare Origin = "fileshare"
	// ad-hoc documents of a reanalysis; never pooled
	OriginRevision Origin = "reanalysis"
)

// prefix used to disambiguate a colliding name per origin
var collisionPrefix = map[Origin]string{
	OriginUpload:    "local_",
	OriginArchive:   "local_zip_",
	OriginFileShare: "share_",
}

// Document is an ingested evidence file and its extracted text.
type Document struct {
	Name   string `json:"name"`
	Text   string `json:"-"`
	Origin Origin `json:"origin"`
}

// Pool is a run's evidence corpus keyed by document name. A Pool is not
// safe for concurrent use; the owning session serialises access.
type Pool struct {
	docs  map[string]Document
	order []string
}

func NewPool() *Pool {
	return &Pool{docs: map[string]Document{}}
}

// Add inserts d, prefixing its name by origin when the name is already
// taken so an earlier document is never overwritten. Returns the stored name.
func (p *Pool) Add(d Document) string {
	name := d.Name
	if _, taken := p.docs[name]; taken {
		name = collisionPrefix[d.Origin] + name
		for i := 2; ; i++ {
			if _, taken := p.docs[name]; !taken {
				break
			}
			name = collisionPrefix[d.Origin] + d.Name + "_" + strconv.Itoa(i)
		}
	}
	d.Name = name
	p.docs[name] = d
	p.order = append(p.order, name)
	return name
}

// Names lists document names in insertion order.
func (p *Pool) Names() []string {
	return append([]string(nil), p.order...)
}

// Texts returns the name → text mapping matched against.
func (p *Pool) Texts() map[string]string {
	out := make(map[string]string, len(p.docs))
	for n, d := range p.docs {
		out[n] = d.Text
	}
	return out
}

// Label renders one document under its separator line, the form every
// evidence text is handed to the answerer in.
func Label(name, text string) string {
	return "--- Content from " + name + " ---\n" + text
}

// Merge overlays extra on top of base; extra wins on a name clash.
func Merge(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// SortedNames returns the keys of docs in lexical order.
func SortedNames(docs map[string]string) []string {
	names := make([]string, 0, len(docs))
	for n := range docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is a document type the extractor reads.
func IsSupported(name string) bool {
	l := strings.ToLower(name)
	return strings.HasSuffix(l, ".pdf") || strings.HasSuffix(l, ".docx")
}

// IsArchive reports whether name is a zip archive.
func IsArchive(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zip")
}
