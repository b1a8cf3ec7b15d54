package cli

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jfortez/flowgraph/pkg/errors"
	"github.com/jfortez/flowgraph/pkg/snapshot"
	"github.com/jfortez/flowgraph/pkg/source"
)

// inputFlags selects where the graph document comes from. Exactly one of
// --file, --mongo-uri, or --gen is expected; --file wins when several are set.
type inputFlags struct {
	file string

	mongoURI  string
	mongoDB   string
	mongoColl string
	mongoDoc  string

	gen        bool
	genDepth   int
	genBreadth int
	genSeed    int64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "graph JSON document to load")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", "flowgraph", "MongoDB database name")
	cmd.Flags().StringVar(&f.mongoColl, "mongo-collection", "graphs", "MongoDB collection name")
	cmd.Flags().StringVar(&f.mongoDoc, "doc", "", "named graph document to load from MongoDB")
	cmd.Flags().BoolVar(&f.gen, "gen", false, "generate a synthetic tree instead of loading")
	cmd.Flags().IntVar(&f.genDepth, "gen-depth", 3, "generated tree depth")
	cmd.Flags().IntVar(&f.genBreadth, "gen-breadth", 4, "generated tree max children per node")
	cmd.Flags().Int64Var(&f.genSeed, "gen-seed", 0, "generated tree seed (0 = random)")
}

// open resolves the flags into a Source. The returned close function
// releases backend connections and may be called with a fresh context.
func (f *inputFlags) open(ctx context.Context) (source.Source, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch {
	case f.file != "":
		return source.NewFile(f.file), noop, nil

	case f.mongoURI != "":
		if err := errors.ValidateDocumentName(f.mongoDoc); err != nil {
			return nil, nil, err
		}
		m, err := source.NewMongo(ctx, source.MongoConfig{
			URI:        f.mongoURI,
			Database:   f.mongoDB,
			Collection: f.mongoColl,
			Document:   f.mongoDoc,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "open mongo source")
		}
		return m, m.Close, nil

	case f.gen:
		gen := source.NewGenerator(source.GenerateConfig{
			Depth:   f.genDepth,
			Breadth: f.genBreadth,
			Seed:    f.genSeed,
		})
		return gen, noop, nil
	}

	return nil, nil, errors.New(errors.ErrCodeInvalidInput, "no graph source: pass --file, --mongo-uri, or --gen")
}

// newPublisher assembles the snapshot publisher stack from config: the
// in-process memory publisher always, plus file and Redis backends when
// configured. The memory publisher is returned separately so the API can
// read from it directly.
func newPublisher(fc fileConfig) (*snapshot.Memory, snapshot.Publisher) {
	mem := snapshot.NewMemory()
	pubs := []snapshot.Publisher{mem}

	if fc.Publish.File != "" {
		pubs = append(pubs, snapshot.NewFile(fc.Publish.File))
	}
	if fc.Publish.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: fc.Publish.RedisAddr})
		pubs = append(pubs, snapshot.NewRedis(client, fc.Publish.RedisKey))
	}

	if len(pubs) == 1 {
		return mem, mem
	}
	return mem, &snapshot.Multi{Publishers: pubs}
}
