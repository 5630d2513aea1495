package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dutymanager/dutymanager/backend/go-services/internal/database"
)

// SaveRecord is the Mongo representation of one completed save: when it
// happened, how large the document was, and which backup snapshot (if
// any) preceded the overwrite. Purely an audit trail — the document
// itself lives only on disk.
type SaveRecord struct {
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	Bytes      int       `bson:"bytes" json:"bytes"`
	BackupFile string    `bson:"backupFile,omitempty" json:"backupFile,omitempty"`
	RemoteAddr string    `bson:"remoteAddr,omitempty" json:"remoteAddr,omitempty"`
}

// Record inserts a save-audit record into the provided Mongo URI/db.
// If mongoURI is empty the function is a no-op.
func Record(ctx context.Context, mongoURI, databaseName string, rec *SaveRecord) error {
	if mongoURI == "" {
		return nil
	}
	client, err := database.ConnectMongo(ctx, mongoURI, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	col := client.Database(databaseName).Collection("save_audit")
	if _, err := col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("record save audit: %w", err)
	}
	return nil
}

// Recent returns up to limit audit records, newest first. Returns nil
// when mongoURI is empty.
func Recent(ctx context.Context, mongoURI, databaseName string, limit int64) ([]SaveRecord, error) {
	if mongoURI == "" {
		return nil, nil
	}
	client, err := database.ConnectMongo(ctx, mongoURI, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	col := client.Database(databaseName).Collection("save_audit")
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []SaveRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
