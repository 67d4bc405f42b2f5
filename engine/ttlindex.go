package engine

import "github.com/google/btree"

// ttlBucket groups every key that expires at the same millisecond. Keys
// within a bucket are kept in insertion order.
type ttlBucket struct {
	ts   int64
	keys []string
}

func ttlBucketLess(a, b *ttlBucket) bool { return a.ts < b.ts }

// ttlIndex is the ordered expiry_ts -> []key structure plus its reverse
// key -> expiry_ts map. Go has no standard ordered map, so the
// ascending-order walk is implemented with google/btree's generic
// BTreeG.
type ttlIndex struct {
	tree      *btree.BTreeG[*ttlBucket]
	keyExpiry map[string]int64
}

const ttlTreeDegree = 32

func newTTLIndex() *ttlIndex {
	return &ttlIndex{
		tree:      btree.NewG(ttlTreeDegree, ttlBucketLess),
		keyExpiry: make(map[string]int64),
	}
}

// upsert records (or moves) key's expiry to ts, removing any prior entry
// first so a key never appears in two buckets at once.
func (t *ttlIndex) upsert(key string, ts int64) {
	t.remove(key)
	bucket, ok := t.tree.Get(&ttlBucket{ts: ts})
	if !ok {
		bucket = &ttlBucket{ts: ts}
		t.tree.ReplaceOrInsert(bucket)
	}
	bucket.keys = append(bucket.keys, key)
	t.keyExpiry[key] = ts
}

// remove drops key from the index. A no-op if key has no TTL entry.
func (t *ttlIndex) remove(key string) {
	ts, ok := t.keyExpiry[key]
	if !ok {
		return
	}
	delete(t.keyExpiry, key)
	bucket, ok := t.tree.Get(&ttlBucket{ts: ts})
	if !ok {
		return
	}
	for i, k := range bucket.keys {
		if k == key {
			bucket.keys = append(bucket.keys[:i], bucket.keys[i+1:]...)
			break
		}
	}
	if len(bucket.keys) == 0 {
		t.tree.Delete(bucket)
	}
}

// collectExpired returns every key whose expiry is <= now, draining their
// buckets from the tree as it walks, bounding the work to the number of
// buckets actually due. Mirrors TTLIndex::CollectExpired.
func (t *ttlIndex) collectExpired(now int64) []string {
	var expired []string
	for {
		min, ok := t.tree.Min()
		if !ok || min.ts > now {
			break
		}
		t.tree.DeleteMin()
		for _, k := range min.keys {
			expired = append(expired, k)
			delete(t.keyExpiry, k)
		}
	}
	return expired
}

func (t *ttlIndex) size() int { return len(t.keyExpiry) }

func (t *ttlIndex) clear() {
	t.tree.Clear(false)
	t.keyExpiry = make(map[string]int64)
}
