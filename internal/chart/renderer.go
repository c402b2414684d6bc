package chart

import (
	"fmt"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"hdidash/internal/indicators"
)

// HoveredEntity extracts the entity name from a hover payload, or "" when
// the payload is absent or does not carry one.
func HoveredEntity(hd *HoverData) string {
	if hd == nil || len(hd.Points) == 0 || len(hd.Points[0].CustomData) == 0 {
		return ""
	}
	first := hd.Points[0].CustomData[0]
	// Payloads built from nested customdata wrap the row once more.
	if nested, ok := first.([]any); ok && len(nested) > 0 {
		first = nested[0]
	}
	name, _ := first.(string)
	return name
}

// Renderer serves figures for one dataset, memoizing recent selections.
// Figures returned from the cache are shared and must not be modified.
type Renderer struct {
	ds    *indicators.Dataset
	cache *lru.Cache[string, Figure]
}

// NewRenderer binds a dataset. cacheSize <= 0 disables caching.
func NewRenderer(ds *indicators.Dataset, cacheSize int) (*Renderer, error) {
	r := &Renderer{ds: ds}
	if cacheSize > 0 {
		c, err := lru.New[string, Figure](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("render cache: %w", err)
		}
		r.cache = c
	}
	return r, nil
}

// Dataset returns the bound dataset.
func (r *Renderer) Dataset() *indicators.Dataset { return r.ds }

// Render is Render over the bound dataset.
func (r *Renderer) Render(selected []string, hovered string) Figure {
	regions := canonicalRegions(selected)
	if r.cache == nil {
		return Render(r.ds, regions, hovered)
	}
	key := strings.Join(regions, "\x1f") + "\x1e" + hovered
	if fig, ok := r.cache.Get(key); ok {
		return fig
	}
	fig := Render(r.ds, regions, hovered)
	r.cache.Add(key, fig)
	return fig
}

// canonicalRegions sorts and deduplicates a selection.
func canonicalRegions(selected []string) []string {
	out := slices.Clone(selected)
	slices.Sort(out)
	return slices.Compact(out)
}
