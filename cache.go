package bongo

import "os"

// AvatarLoader caches loaded avatars by canonical path so repeated requests
// for the same pack reuse the decoded images. Like the rest of the package it
// is not safe for concurrent use.
type AvatarLoader struct {
	opts  []LoadOption
	cache map[string]*Avatar
}

// NewAvatarLoader returns an empty cache. opts are applied to every load.
func NewAvatarLoader(opts ...LoadOption) *AvatarLoader {
	return &AvatarLoader{
		opts:  opts,
		cache: make(map[string]*Avatar),
	}
}

// Load returns the cached avatar for path, loading it on first use. path may
// name an avatar.json or a pack directory.
func (c *AvatarLoader) Load(path string) (*Avatar, error) {
	key := canonicalPath(path)
	if a, ok := c.cache[key]; ok {
		return a, nil
	}
	a, err := LoadPath(key, c.opts...)
	if err != nil {
		return nil, err
	}
	c.cache[key] = a
	return a, nil
}

// Reload drops any cached avatar for path and loads it again.
func (c *AvatarLoader) Reload(path string) (*Avatar, error) {
	delete(c.cache, canonicalPath(path))
	return c.Load(path)
}

// Remove forgets the cached avatar for path so its images can be freed.
func (c *AvatarLoader) Remove(path string) {
	delete(c.cache, canonicalPath(path))
}

// ClearCache forgets every cached avatar.
func (c *AvatarLoader) ClearCache() {
	clear(c.cache)
}

// Len returns the number of cached avatars.
func (c *AvatarLoader) Len() int {
	return len(c.cache)
}

// LoadPath loads an avatar from either an avatar.json file or a directory.
func LoadPath(path string, opts ...LoadOption) (*Avatar, error) {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return LoadFromConfig(path, opts...)
	}
	return LoadFromDirectory(path, opts...)
}
