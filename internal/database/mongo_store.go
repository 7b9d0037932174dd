// internal/database/mongo_store.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tusep-web/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollection = "web_sessions"

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// sessionDoc stores the credential as its JSON encoding so the model's
// custom timestamp type round-trips unchanged.
type sessionDoc struct {
	Key       string    `bson:"_id"`
	UserID    string    `bson:"userID"`
	Payload   []byte    `bson:"payload"`
	ExpiresAt time.Time `bson:"expiresAt,omitempty"`
}

// MongoStore keeps credentials in the web_sessions collection. A TTL index
// on expiresAt removes stale entries.
type MongoStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewMongoStore(db *mongo.Database, ttl time.Duration) *MongoStore {
	return &MongoStore{coll: db.Collection(sessionCollection), ttl: ttl}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (s *MongoStore) Load(ctx context.Context, key string) (Credential, bool, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, err
	}
	if !doc.ExpiresAt.IsZero() && time.Now().After(doc.ExpiresAt) {
		return Credential{}, false, nil
	}
	var cred Credential
	if err := json.Unmarshal(doc.Payload, &cred); err != nil {
		return Credential{}, false, fmt.Errorf("decode credential: %w", err)
	}
	return cred, true, nil
}

func (s *MongoStore) Save(ctx context.Context, key string, cred Credential) error {
	payload, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	doc := sessionDoc{Key: key, UserID: cred.User.ID, Payload: payload}
	if s.ttl > 0 {
		doc.ExpiresAt = time.Now().Add(s.ttl)
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
