package store

import (
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newRedisStore(t *testing.T) (*RedisDocumentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisDocumentStore(mr.Addr(), ""), mr
}

func TestRedisDocumentStoreRoundTrip(t *testing.T) {
	docs, _ := newRedisStore(t)

	if _, present, err := docs.LoadAll(PortfoliosKey); err != nil {
		t.Fatalf("LoadAll: %v", err)
	} else if present {
		t.Fatalf("expected absent key")
	}

	records := []json.RawMessage{json.RawMessage(`{"id":"p1"}`), json.RawMessage(`{"id":"p2"}`)}
	if err := docs.SaveAll(PortfoliosKey, records); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	got, present, err := docs.LoadAll(PortfoliosKey)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !present || len(got) != 2 || string(got[1]) != `{"id":"p2"}` {
		t.Fatalf("unexpected load result: present=%v records=%v", present, got)
	}
}

func TestRedisDocumentStoreCorruptPayloadReadsEmpty(t *testing.T) {
	docs, mr := newRedisStore(t)
	mr.Set(UsersKey, "not a json array")

	got, present, err := docs.LoadAll(UsersKey)
	if err != nil {
		t.Fatalf("corrupt payload should not error: %v", err)
	}
	if !present {
		t.Fatalf("corrupt payload still marks the key as written")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}

func TestRedisDocumentStoreSaveNilNormalizes(t *testing.T) {
	docs, mr := newRedisStore(t)
	if err := docs.SaveAll(SessionKey, nil); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	val, err := mr.Get(SessionKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val != "[]" {
		t.Fatalf("expected empty JSON array, got %q", val)
	}
}
