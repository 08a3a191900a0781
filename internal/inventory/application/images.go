package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

var fallbackImages = map[string]string{
	"fruits":     "https://images.unsplash.com/photo-1610832958506-aa56368176cf?w=400",
	"vegetables": "https://images.unsplash.com/photo-1540420773420-3366772f4999?w=400",
	"dairy":      "https://images.unsplash.com/photo-1563636619-e9143da7973b?w=400",
	"bakery":     "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400",
	"grains":     "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=400",
	"beverages":  "https://images.unsplash.com/photo-1544145945-f90425340c7e?w=400",
	"snacks":     "https://images.unsplash.com/photo-1599490659213-e2b9527bd087?w=400",
	"meat":       "https://images.unsplash.com/photo-1607623814075-e51df1bdc82f?w=400",
	"seafood":    "https://images.unsplash.com/photo-1544943910-4c1dc44aab44?w=400",
	"spices":     "https://images.unsplash.com/photo-1596040033229-a9821ebd058d?w=400",
}

const defaultFallbackImage = "https://images.unsplash.com/photo-1542838132-92c53300491e?w=400"

// ImageService looks up product photos and memoises successful lookups for
// the life of the process.
type ImageService struct {
	log      *slog.Logger
	searcher ImageSearcher

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

func NewImageService(log *slog.Logger, searcher ImageSearcher) *ImageService {
	return &ImageService{
		log:      log,
		searcher: searcher,
		cache:    make(map[string]string),
	}
}

// ProductImage never fails: any lookup problem yields the category fallback.
func (s *ImageService) ProductImage(ctx context.Context, name, category string) string {
	key := cacheKey(name, category)

	s.mu.RLock()
	url, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return url
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		url, err := s.searcher.SearchPhoto(ctx, searchQuery(name, category))
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.cache[key] = url
		s.mu.Unlock()
		return url, nil
	})
	if err != nil {
		s.log.Warn("image lookup failed, using fallback", "name", name, "category", category, "err", err)
		return FallbackImage(category)
	}
	return v.(string)
}

func (s *ImageService) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

func (s *ImageService) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

func FallbackImage(category string) string {
	if url, ok := fallbackImages[strings.ToLower(strings.TrimSpace(category))]; ok {
		return url
	}
	return defaultFallbackImage
}

func cacheKey(name, category string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(category))
}

func searchQuery(name, category string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	category = strings.ToLower(strings.TrimSpace(category))

	var suffix string
	switch category {
	case "fruits":
		suffix = "fresh fruits"
	case "vegetables":
		suffix = "fresh vegetables"
	case "dairy":
		suffix = "dairy products"
	default:
		suffix = category
	}
	if name == "" {
		return suffix
	}
	if suffix == "" {
		return name
	}
	return name + " " + suffix
}
