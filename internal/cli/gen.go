package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfortez/flowgraph/pkg/errors"
	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/source"
)

func newGenCmd() *cobra.Command {
	var (
		depth   int
		breadth int
		seed    int64
		output  string

		mongoURI  string
		mongoDB   string
		mongoColl string
		mongoDoc  string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic tree graph document",
		Long:  `Generate a random tree-shaped graph document. The result goes to stdout by default, to a file with --output, or into MongoDB with --mongo-uri and --doc.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			gen := source.NewGenerator(source.GenerateConfig{
				Depth:   depth,
				Breadth: breadth,
				Seed:    seed,
			})
			g, err := gen.Load(ctx)
			if err != nil {
				return err
			}
			logger.Debug("generated", "nodes", len(g.Nodes), "links", len(g.Links))

			if mongoURI != "" {
				if err := errors.ValidateDocumentName(mongoDoc); err != nil {
					return err
				}
				m, err := source.NewMongo(ctx, source.MongoConfig{
					URI:        mongoURI,
					Database:   mongoDB,
					Collection: mongoColl,
					Document:   mongoDoc,
				})
				if err != nil {
					return errors.Wrap(errors.ErrCodeNetwork, err, "open mongo")
				}
				defer func() { _ = m.Close(context.Background()) }()
				if err := m.Save(ctx, mongoDoc, g); err != nil {
					return err
				}
				logger.Info("saved", "doc", mongoDoc, "nodes", len(g.Nodes))
				return nil
			}

			data, err := graph.Marshal(g)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			logger.Info("wrote", "path", output, "nodes", len(g.Nodes))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 3, "tree depth below the root")
	cmd.Flags().IntVar(&breadth, "breadth", 4, "max children per node")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "save into MongoDB at this URI instead of writing a file")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "flowgraph", "MongoDB database name")
	cmd.Flags().StringVar(&mongoColl, "mongo-collection", "graphs", "MongoDB collection name")
	cmd.Flags().StringVar(&mongoDoc, "doc", "", "document name to save under")
	return cmd
}
