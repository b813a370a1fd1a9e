package kv

import (
	"testing"
)

func TestMemoryStore_GetAbsent(t *testing.T) {
	s := NewMemoryStore()
	v, ok, err := s.Get("missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || v != nil {
		t.Errorf("Get() = (%v, %v), want (nil, false)", v, ok)
	}
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get() = (_, %v, %v), want value", ok, err)
	}
	if string(v) != "v1" {
		t.Errorf("Get() = %q, want v1", v)
	}

	// Overwrite replaces.
	s.Set("k", []byte("v2"))
	v, _, _ = s.Get("k")
	if string(v) != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", v)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key still present after Delete()")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() on absent key error = %v", err)
	}
}

func TestMemoryStore_DefensiveCopies(t *testing.T) {
	s := NewMemoryStore()
	val := []byte("original")
	s.Set("k", val)
	val[0] = 'X'

	got, _, _ := s.Get("k")
	if string(got) != "original" {
		t.Errorf("stored value mutated: %q", got)
	}

	got[0] = 'Y'
	again, _, _ := s.Get("k")
	if string(again) != "original" {
		t.Errorf("returned slice aliases storage: %q", again)
	}
}
