package backend

import lru "github.com/hashicorp/golang-lru/v2"

// cache holds repository rows by id. Repositories are never renamed or
// deleted, so entries never go stale.
type cache struct {
	b     *Backend
	repos *lru.Cache[int64, *repo]
}

func newCache(b *Backend, size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{b: b}
	cache, _ := lru.New[int64, *repo](size)
	c.repos = cache
	return c
}

func (c *cache) Get(id int64) (*repo, bool) {
	return c.repos.Get(id)
}

func (c *cache) Set(id int64, r *repo) {
	c.repos.Add(id, r)
}

func (c *cache) Delete(id int64) {
	c.repos.Remove(id)
}

func (c *cache) Len() int {
	return c.repos.Len()
}
