package audit

import (
	"context"
	"testing"
	"time"
)

func TestRecordRecentNoopWhenMongoURIEmpty(t *testing.T) {
	rec := &SaveRecord{Timestamp: time.Now(), Bytes: 42}
	// should be noop and not error when mongoURI empty
	if err := Record(context.Background(), "", "", rec); err != nil {
		t.Fatalf("expected no error for empty mongoURI, got %v", err)
	}
	// Recent should return nil, nil when mongoURI empty
	if got, err := Recent(context.Background(), "", "", 10); err != nil || got != nil {
		t.Fatalf("expected nil result for empty mongoURI, got %v err=%v", got, err)
	}
}
