package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 42)

	v, ok := c.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("got (%v, %v), want (42, true)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("missing key should not be found")
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry should not be served")
	}
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("products:u1:page1", 1)
	c.Set("products:u1:page2", 2)
	c.Set("products:u2:page1", 3)

	c.DeleteByPrefix("products:u1:")

	if _, ok := c.Get("products:u1:page1"); ok {
		t.Fatal("prefix delete missed a key")
	}
	if _, ok := c.Get("products:u2:page1"); !ok {
		t.Fatal("prefix delete removed another owner's key")
	}
	if c.Size() != 1 {
		t.Fatalf("size = %d, want 1", c.Size())
	}
}
