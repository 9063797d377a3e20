package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/internal/ai"
	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// schemaContextTables caps how many tables get described to the model.
const schemaContextTables = 20

// NewAICommand creates the ai command.
func NewAICommand() *cobra.Command {
	var execute bool
	var noSchema bool

	cmd := &cobra.Command{
		Use:   "ai <request...>",
		Short: "Generate a query from a natural-language request",
		Long: `Generate a query for the connected engine from a natural-language
request. The session's schema is sent along as context so the model can
reference real table and column names.

Requires an API key: set ai.api_key in leapdb.yaml or LEAPDB_AI_API_KEY.
The endpoint speaks the OpenAI chat-completions protocol, so any
compatible provider works.`,
		Example: `  leapdb ai "monthly revenue by region for 2025"
  leapdb ai --execute "the ten most recent signups"
  leapdb -p cache ai "all session keys for user 42"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAI(cmd, strings.Join(args, " "), execute, noSchema)
		},
	}

	cmd.Flags().BoolVar(&execute, "execute", false, "Run the generated query immediately")
	cmd.Flags().BoolVar(&noSchema, "no-schema", false, "Skip schema introspection; generate from the request alone")

	return cmd
}

func runAI(cmd *cobra.Command, request string, execute, noSchema bool) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	schema := ""
	if !noSchema {
		schema, err = buildSchemaContext(cmd.Context(), cc.Adapter)
		if err != nil {
			return fmt.Errorf("failed to introspect schema: %w", err)
		}
	}

	client := ai.NewClient(ai.Config{
		APIKey: cc.Cfg.AI.APIKey,
		APIURL: cc.Cfg.AI.APIURL,
		Model:  cc.Cfg.AI.Model,
	}, cc.Logger)

	query, err := client.Generate(cmd.Context(), cc.EngineType, schema, request)
	if err != nil {
		return err
	}

	if !execute {
		cc.Renderer.Printf("%s\n", query)
		return nil
	}

	// The query goes to stderr so stdout carries only the result.
	cc.Renderer.Errorf("Generated query:\n%s\n\n", query)

	rs, err := cc.Adapter.Query(cmd.Context(), query)
	if err != nil {
		return err
	}
	return cc.Renderer.Result(rs)
}

// buildSchemaContext describes the session's tables one per line, columns
// in parentheses. Key-value engines list bare key names.
func buildSchemaContext(ctx context.Context, adp adapter.Adapter) (string, error) {
	tables, err := adp.ListTables(ctx, "")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, t := range tables {
		if i == schemaContextTables {
			fmt.Fprintf(&b, "... and %d more tables\n", len(tables)-schemaContextTables)
			break
		}

		cols, err := adp.ListColumns(ctx, t.Name, "")
		if err != nil || len(cols) == 0 {
			fmt.Fprintf(&b, "%s\n", t.Name)
			continue
		}

		parts := make([]string, 0, len(cols))
		for _, c := range cols {
			parts = append(parts, c.Name+" "+c.Type)
		}
		fmt.Fprintf(&b, "%s(%s)\n", t.Name, strings.Join(parts, ", "))
	}
	return b.String(), nil
}
