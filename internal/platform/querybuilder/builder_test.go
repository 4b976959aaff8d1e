package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("slot", "url").
		From("import_queue").
		Where(Eq("url", "u1"), Expr("slot < ?", 30)).
		OrderBy("slot").
		Limit(10).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT slot, url FROM import_queue WHERE url = $1 AND slot < $2 ORDER BY slot LIMIT 10", query)
	assert.Equal(t, []any{"u1", 30}, args)
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	t.Parallel()

	query, args, err := Select("url").From("imported_urls").Where(In("url", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT url FROM imported_urls WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestInsertBuilderMultiRow(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("fixtures").
		Columns("position", "round").
		Values(1, "1").
		Values(2, "Final").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO fixtures (position, round) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", query)
	assert.Equal(t, []any{1, "1", 2, "Final"}, args)
}

func TestInsertBuilderRejectsRaggedRows(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdateAndDeleteBuilders(t *testing.T) {
	t.Parallel()

	query, args, err := Update("import_queue").
		Set("url", "").
		Where(Eq("slot", 3), Eq("url", "u")).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE import_queue SET url = $1 WHERE slot = $2 AND url = $3", query)
	assert.Equal(t, []any{"", 3, "u"}, args)

	query, args, err = DeleteFrom("roster_players").Where(Eq("kind", "players")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM roster_players WHERE kind = $1", query)
	assert.Equal(t, []any{"players"}, args)
}

type teamModel struct {
	Tag     string `db:"tag"`
	Name    string `db:"name"`
	Ignored string `db:"-"`
	Logo    string `db:"logo_url"`
}

func TestInsertModels(t *testing.T) {
	t.Parallel()

	query, args, err := InsertModels("teams", []teamModel{
		{Tag: "a", Name: "A", Logo: "la"},
		{Tag: "b", Name: "B"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams (tag, name, logo_url) VALUES ($1, $2, $3), ($4, $5, $6)", query)
	assert.Equal(t, []any{"a", "A", "la", "b", "B", ""}, args)
	assert.Equal(t, []string{"tag", "name", "logo_url"}, Columns[teamModel]())

	_, _, err = InsertModels[teamModel]("teams", nil, "")
	require.Error(t, err)
}
