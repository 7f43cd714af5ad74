// Package previews lists the preview images shown on the home page.
package previews

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sketchy-app/sketchy/services"
)

const cacheKey = "previews"

// Lister reads preview file names from the media directory and caches the
// resulting URL list for a short TTL, so the home page does not hit the
// filesystem on every request.
type Lister struct {
	dir       string
	urlPrefix string
	prefix    string
	ttl       time.Duration
	cache     *gocache.Cache
}

var _ services.PreviewLister = (*Lister)(nil)

// NewLister creates a lister for files in dir whose names start with prefix.
func NewLister(dir, urlPrefix, prefix string, ttl time.Duration) *Lister {
	return &Lister{
		dir:       dir,
		urlPrefix: urlPrefix,
		prefix:    prefix,
		ttl:       ttl,
		cache:     gocache.New(ttl, 2*ttl),
	}
}

// Previews returns the URLs of all preview files, sorted by name.
func (l *Lister) Previews() ([]string, error) {
	if cached, found := l.cache.Get(cacheKey); found {
		return cached.([]string), nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list previews in %s: %w", l.dir, err)
	}

	urls := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), l.prefix) {
			continue
		}
		urls = append(urls, path.Join(l.urlPrefix, entry.Name()))
	}
	sort.Strings(urls)

	l.cache.Set(cacheKey, urls, l.ttl)
	return urls, nil
}
