package models

import "testing"

func TestCacheEntry_Expired(t *testing.T) {
	cases := []struct {
		name       string
		insertedAt int64
		ttlSec     int
		now        int64
		want       bool
	}{
		{"fresh entry", 1000, 60, 1010, false},
		{"exactly at ttl boundary is not yet expired", 1000, 60, 1060, false},
		{"one second past ttl", 1000, 60, 1061, true},
		{"zero ttl expires immediately after insertion", 1000, 0, 1001, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := CacheEntry{InsertedAt: c.insertedAt, TTLSec: c.ttlSec}
			if got := entry.Expired(c.now); got != c.want {
				t.Errorf("Expired(%d) = %v, want %v", c.now, got, c.want)
			}
		})
	}
}
