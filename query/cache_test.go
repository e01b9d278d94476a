package query

import (
	"fmt"
	"sync"
	"testing"
)

func TestCache_ReturnsSameQuery(t *testing.T) {
	c := NewCache(4)
	first, err := c.Parse("SELECT a WHERE a > 1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := c.Parse("SELECT a WHERE a > 1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if first != second {
		t.Error("expected cached pointer on second parse")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := NewCache(4)
	for i := 0; i < 2; i++ {
		if _, err := c.Parse("SELECT"); err == nil {
			t.Fatal("expected error")
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCache_EvictsWhenFull(t *testing.T) {
	c := NewCache(2)
	for i := 0; i < 3; i++ {
		if _, err := c.Parse(fmt.Sprintf("SELECT c%d", i)); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after eviction", c.Len())
	}
}

func TestCache_DefaultSize(t *testing.T) {
	if c := NewCache(0); c.max != DefaultCacheSize {
		t.Errorf("max = %d, want %d", c.max, DefaultCacheSize)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(8)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("SELECT c%d LIMIT %d", i%4, i%4)
			q, err := c.Parse(text)
			if err != nil {
				t.Errorf("Parse(%q) error = %v", text, err)
				return
			}
			if q.LimitAndOffset.Limit != i%4 {
				t.Errorf("Limit = %d, want %d", q.LimitAndOffset.Limit, i%4)
			}
		}(i)
	}
	wg.Wait()
}
