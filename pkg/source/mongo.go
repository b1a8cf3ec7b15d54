package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// ErrDocumentNotFound is returned when the named graph document does not
// exist in the collection.
var ErrDocumentNotFound = errors.New("graph document not found")

// mongoDoc is the stored shape of one named graph.
type mongoDoc struct {
	Name      string      `bson:"name"`
	Graph     graph.Graph `bson:"graph"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

// Mongo loads named graph documents from a MongoDB collection.
type Mongo struct {
	coll *mongo.Collection
	name string
}

// MongoConfig locates one named document.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Document   string // name of the graph document to load
}

// NewMongo connects to MongoDB and binds to the named document.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
		name: cfg.Document,
	}, nil
}

// Load fetches and validates the bound document.
func (m *Mongo) Load(ctx context.Context) (graph.Graph, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"name": m.name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return graph.Graph{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, m.name)
		}
		return graph.Graph{}, fmt.Errorf("find graph %s: %w", m.name, err)
	}
	if err := doc.Graph.Validate(); err != nil {
		return graph.Graph{}, fmt.Errorf("validate graph %s: %w", m.name, err)
	}
	return doc.Graph, nil
}

// Save upserts a graph under the given name.
func (m *Mongo) Save(ctx context.Context, name string, g graph.Graph) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate graph %s: %w", name, err)
	}
	doc := mongoDoc{Name: name, Graph: g, UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"name": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save graph %s: %w", name, err)
	}
	return nil
}

// List returns the names of all stored graph documents.
func (m *Mongo) List(ctx context.Context) ([]string, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode graph name: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	return names, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.coll.Database().Client().Disconnect(ctx)
}
