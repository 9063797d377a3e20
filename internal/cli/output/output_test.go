package output_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/internal/cli/output"
	"github.com/leapstack-labs/leapdb/internal/cli/testutil"
	"github.com/leapstack-labs/leapdb/pkg/adapter"
	"github.com/leapstack-labs/leapdb/pkg/core"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want output.OutputMode
	}{
		{"table", output.ModeTable},
		{"text", output.ModeTable},
		{"JSON", output.ModeJSON},
		{"csv", output.ModeCSV},
		{"md", output.ModeMarkdown},
		{"markdown", output.ModeMarkdown},
		{"auto", output.ModeAuto},
		{"", output.ModeAuto},
		{"bogus", output.ModeAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, output.Mode(tt.in), "Mode(%q)", tt.in)
	}
}

func TestEffectiveMode(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeAuto, true)
	assert.Equal(t, output.ModeTable, r.EffectiveMode())

	r = testutil.NewTestRenderer(output.ModeAuto, false)
	assert.Equal(t, output.ModeMarkdown, r.EffectiveMode())

	r = testutil.NewTestRenderer(output.ModeCSV, true)
	assert.Equal(t, output.ModeCSV, r.EffectiveMode())
}

func TestGrid_Table(t *testing.T) {
	r := testutil.NewTestRendererTable()

	err := r.Grid([]string{"ID", "NAME"}, [][]string{{"1", "alice"}, {"2", "bob"}})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "ID")
	assert.Contains(t, r.Output(), "alice")
	assert.Contains(t, r.Output(), "(2 rows)")
}

func TestGrid_TableEmpty(t *testing.T) {
	r := testutil.NewTestRendererTable()

	require.NoError(t, r.Grid([]string{"ID"}, nil))
	assert.Equal(t, "(0 rows)\n", r.Output())
}

func TestGrid_CSV(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeCSV, false)

	err := r.Grid([]string{"name", "note"}, [][]string{
		{"plain", "no escaping"},
		{"comma,here", `say "hi"`},
	})
	require.NoError(t, err)

	want := "name,note\n" +
		"plain,no escaping\n" +
		"\"comma,here\",\"say \"\"hi\"\"\"\n"
	assert.Equal(t, want, r.Output())
}

func TestGrid_Markdown(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	err := r.Grid([]string{"id", "name"}, [][]string{{"1", "alice"}})
	require.NoError(t, err)

	want := "| id | name |\n" +
		"| --- | --- |\n" +
		"| 1 | alice |\n"
	assert.Equal(t, want, r.Output())
}

func TestGrid_MarkdownEmpty(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	require.NoError(t, r.Grid([]string{"id"}, nil))
	assert.Equal(t, "(0 rows)\n", r.Output())
}

func TestGrid_JSON(t *testing.T) {
	r := testutil.NewTestRendererJSON()

	err := r.Grid([]string{"id", "name"}, [][]string{{"1", "alice"}})
	require.NoError(t, err)

	var parsed []map[string]string
	require.NoError(t, json.Unmarshal(r.Out.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "alice", parsed[0]["name"])
}

func TestResult_Table(t *testing.T) {
	r := testutil.NewTestRendererTable()

	rs := &core.ResultSet{Columns: []string{"id", "nick"}}
	rs.Append(core.Row{core.IntegerValue(1), core.TextValue("alice")})
	rs.Append(core.Row{core.IntegerValue(2), core.Null()})

	require.NoError(t, r.Result(rs))
	assert.Contains(t, r.Output(), "alice")
	assert.Contains(t, r.Output(), "NULL")
	assert.Contains(t, r.Output(), "(2 rows)")
}

func TestResult_JSONKeepsColumnOrder(t *testing.T) {
	r := testutil.NewTestRendererJSON()

	rs := &core.ResultSet{Columns: []string{"zeta", "alpha"}}
	rs.Append(core.Row{core.IntegerValue(1), core.TextValue("x")})

	require.NoError(t, r.Result(rs))

	var parsed struct {
		Columns []string            `json:"columns"`
		Rows    [][]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(r.Out.Bytes(), &parsed))
	assert.Equal(t, []string{"zeta", "alpha"}, parsed.Columns)
	require.Len(t, parsed.Rows, 1)
	assert.Len(t, parsed.Rows[0], 2)
}

func TestTables(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	err := r.Tables([]core.TableInfo{
		{
			Name:      "users",
			DataSize:  core.IntegerValue(16384),
			IndexSize: core.Null(),
			TotalSize: core.IntegerValue(16384),
			RowCount:  core.IntegerValue(3),
			Comment:   "accounts",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "| users | 16384 |  | 16384 | 3 | accounts |")
}

func TestColumns(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	err := r.Columns([]core.ColumnDef{
		{Name: "id", Type: "BIGINT", PrimaryKey: true, Nullability: core.NullabilityNotNull},
		{Name: "nick", Type: "TEXT", Nullability: core.NullabilityNullable, Default: "'anon'"},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "| id | BIGINT | NO | PRI |  |  |")
	assert.Contains(t, r.Output(), "| nick | TEXT | YES |  | 'anon' |  |")
}

func TestColumns_JSONUsesNullabilityText(t *testing.T) {
	r := testutil.NewTestRendererJSON()

	err := r.Columns([]core.ColumnDef{
		{Name: "id", Type: "BIGINT", Nullability: core.NullabilityNotNull},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), `"nullability": "not null"`)
}

func TestIndexes(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	err := r.Indexes([]core.IndexDef{
		{Name: "PRIMARY", Columns: []string{"id"}, Unique: true, Primary: true},
		{Name: "idx_nick", Columns: []string{"nick", "id"}},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "| PRIMARY | id | YES | YES |  |")
	assert.Contains(t, r.Output(), "| idx_nick | nick, id |  |  |  |")
}

func TestTranslation(t *testing.T) {
	r := testutil.NewTestRendererTable()

	err := r.Translation(core.Translation{
		Statements: []core.Statement{
			{SQL: "ALTER TABLE t ADD COLUMN age INT"},
			{SQL: "ALTER TABLE t MODIFY COLUMN age BIGINT", BestEffort: true},
		},
		Warnings: []string{"verify column order"},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "ALTER TABLE t ADD COLUMN age INT;\n")
	assert.Contains(t, r.Output(), "-- best effort:\nALTER TABLE t MODIFY COLUMN age BIGINT;\n")
	assert.Equal(t, "warning: verify column order\n", r.ErrorOutput())
}

func TestTranslation_JSON(t *testing.T) {
	r := testutil.NewTestRendererJSON()

	err := r.Translation(core.Translation{
		Statements: []core.Statement{{SQL: "DROP INDEX idx_nick", BestEffort: true}},
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), `"sql": "DROP INDEX idx_nick"`)
	assert.Contains(t, r.Output(), `"best_effort": true`)
}

func TestKey(t *testing.T) {
	r := testutil.NewTestRendererTable()

	length := int64(3)
	err := r.Key(&adapter.KeyInfo{
		Key:    "user:1",
		Type:   "hash",
		TTL:    120,
		Value:  `{"name": "alice"}`,
		Length: &length,
	})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "key:     user:1\n")
	assert.Contains(t, r.Output(), "ttl:     120s\n")
	assert.Contains(t, r.Output(), "length:  3\n")
}

func TestKey_NoExpiry(t *testing.T) {
	r := testutil.NewTestRendererTable()

	err := r.Key(&adapter.KeyInfo{Key: "counter", Type: "string", TTL: -1, Value: "42"})
	require.NoError(t, err)

	assert.Contains(t, r.Output(), "ttl:     none\n")
	assert.NotContains(t, r.Output(), "length:")
}

func TestList(t *testing.T) {
	r := testutil.NewTestRendererMarkdown()

	require.NoError(t, r.List("DATABASE", []string{"app", "test"}))
	assert.Contains(t, r.Output(), "| DATABASE |")
	assert.Contains(t, r.Output(), "| app |")

	r.Reset()
	assert.Empty(t, r.Output())

	jr := testutil.NewTestRendererJSON()
	require.NoError(t, jr.List("DATABASE", []string{"app"}))

	var parsed []string
	require.NoError(t, json.Unmarshal(jr.Out.Bytes(), &parsed))
	assert.Equal(t, []string{"app"}, parsed)
}
