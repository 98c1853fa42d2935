// Package store keeps a registry index in MongoDB.
//
// Each published version is one document in the "manifests" collection,
// keyed by "{type}/{id}/{version}". [MongoStore] is a publish sink for the
// ingestion pipeline and a catalog.Provider for dependency resolution, so
// a deployment can resolve against everything ever ingested without a local
// registry checkout.
package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Deps-Tech/deps-registry/pkg/catalog"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
	"github.com/Deps-Tech/deps-registry/pkg/versioning"
)

const (
	// Collection holds one document per published version.
	Collection = "manifests"
	// DefaultDatabase is used when no database name is configured.
	DefaultDatabase = "depsreg"

	connectTimeout = 10 * time.Second
)

// ErrNotFound is returned by Get when no document matches.
var ErrNotFound = stderrors.New("manifest not found")

// Document is the stored form of one package version.
type Document struct {
	Key          string            `bson:"_id"`
	Type         string            `bson:"type"`
	ID           string            `bson:"id"`
	Version      string            `bson:"version"`
	Dependencies map[string]string `bson:"dependencies,omitempty"`
	Provides     []string          `bson:"provides,omitempty"`
	// Manifest is the encoded dep.json, kept verbatim.
	Manifest  string    `bson:"manifest"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewDocument converts a manifest into its stored form.
func NewDocument(t registry.Type, m *manifest.Manifest) (Document, error) {
	data, err := manifest.Encode(m)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Key:          fmt.Sprintf("%s/%s/%s", t, m.ID, m.Version),
		Type:         string(t),
		ID:           m.ID,
		Version:      m.Version,
		Dependencies: m.Dependencies,
		Provides:     m.Provides,
		Manifest:     string(data),
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

// Decode parses the stored manifest.
func (d Document) Decode() (*manifest.Manifest, error) {
	return manifest.Parse([]byte(d.Manifest))
}

// MongoStore is a registry index backed by a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

// Connect opens a connection to uri and verifies it with a ping. An empty
// database selects DefaultDatabase.
func Connect(ctx context.Context, uri, database string, logger *log.Logger) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(Collection),
		logger: logger,
	}, nil
}

// Put stores m, replacing any earlier document for the same version.
func (s *MongoStore) Put(ctx context.Context, t registry.Type, m *manifest.Manifest) error {
	doc, err := NewDocument(t, m)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store %s: %w", doc.Key, err)
	}
	s.logger.Debug("stored manifest", "key", doc.Key)
	return nil
}

// Get loads one version.
func (s *MongoStore) Get(ctx context.Context, t registry.Type, id, version string) (*manifest.Manifest, error) {
	key := fmt.Sprintf("%s/%s/%s", t, id, version)
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc.Decode()
}

// Snapshot builds a catalog from the newest stored version of every deps
// package. It implements catalog.Provider.
func (s *MongoStore) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	opts := options.Find().SetProjection(bson.M{"manifest": 0})
	cur, err := s.coll.Find(ctx, bson.M{"type": string(registry.Deps)}, opts)
	if err != nil {
		return nil, fmt.Errorf("query manifests: %w", err)
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode manifests: %w", err)
	}
	s.logger.Debug("mongodb catalog", "documents", len(docs))
	return SnapshotOf(docs), nil
}

// Close disconnects from the server.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// SnapshotOf reduces documents to the latest version per id. Documents of
// other types than deps are ignored.
func SnapshotOf(docs []Document) *catalog.Snapshot {
	newest := make(map[string]Document)
	for _, d := range docs {
		if d.Type != string(registry.Deps) {
			continue
		}
		if cur, ok := newest[d.ID]; !ok || versioning.IsNewer(d.Version, cur.Version) {
			newest[d.ID] = d
		}
	}

	versions := make(map[string]string, len(newest))
	provides := make(map[string][]string)
	for id, d := range newest {
		versions[id] = d.Version
		if len(d.Provides) > 0 {
			provides[id] = d.Provides
		}
	}
	return catalog.New(versions, provides)
}

var _ catalog.Provider = (*MongoStore)(nil)
