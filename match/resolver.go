package match

import (
	"image/color"
	"sync"

	"recolor/cielab"
)

// Resolver memoizes nearest-candidate lookups for one (index, method) pair.
// Real images repeat a small set of distinct colors, so after a short warm-up
// nearly every pixel is a cache hit.
//
// The cache is a sync.Map keyed by the packed device RGB: workers resolving
// different pixels insert concurrently without locking each other out, and a
// race on the same pixel at worst computes the same deterministic answer
// twice before one insert wins.
type Resolver struct {
	index *Index
	dist  cielab.DistanceFunc
	cache sync.Map // uint32 RGB -> color.RGBA
}

// NewResolver binds an index to a method. The method is resolved to its
// formula here, once, keeping dispatch out of the per-pixel path.
func NewResolver(index *Index, method cielab.Method) *Resolver {
	return &Resolver{
		index: index,
		dist:  method.Distance(),
	}
}

func (r *Resolver) Index() *Index { return r.index }

// Resolve returns the palette color perceptually closest to the given device
// color. Alpha never participates: callers carry it through unchanged.
func (r *Resolver) Resolve(red, green, blue uint8) color.RGBA {
	key := uint32(red)<<16 | uint32(green)<<8 | uint32(blue)

	if hit, ok := r.cache.Load(key); ok {
		return hit.(color.RGBA)
	}

	chosen := r.index.nearest(cielab.FromRGB(red, green, blue), r.dist)
	r.cache.Store(key, chosen)
	return chosen
}

// Cached reports whether a device color has already been resolved.
func (r *Resolver) Cached(red, green, blue uint8) bool {
	_, ok := r.cache.Load(uint32(red)<<16 | uint32(green)<<8 | uint32(blue))
	return ok
}
