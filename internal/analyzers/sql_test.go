package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for SQLAnalyzer:
// - CREATE TABLE: column names, types (including parenthesized precision),
//   PRIMARY KEY / NOT NULL / UNIQUE / DEFAULT flags
// - Table-level CONSTRAINT entries become constraint records, not columns
// - Single-line and multi-line CREATE TABLE parse identically
// - CREATE [UNIQUE] INDEX with table and column list
// - CREATE VIEW captures the query up to the terminator
// - CREATE TRIGGER reads timing/event/table from a multi-line header
// - CREATE FUNCTION/PROCEDURE with IN/OUT params and RETURNS
// - ALTER TABLE ADD CONSTRAINT
// - Statements are matched case-insensitively; comments are ignored

const sqlSample = `-- user schema
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    balance DECIMAL(10, 2) DEFAULT 0,
    CONSTRAINT fk_org FOREIGN KEY (org_id) REFERENCES orgs (id)
);

CREATE UNIQUE INDEX idx_users_email ON users (email);

CREATE VIEW active_users AS
SELECT * FROM users WHERE active = 1;

CREATE TRIGGER trg_audit
AFTER UPDATE ON users
FOR EACH ROW
BEGIN
    INSERT INTO audit VALUES (1);
END;

CREATE FUNCTION get_total(user_id INT)
RETURNS DECIMAL(10, 2)
BEGIN
    RETURN 0;
END;

CREATE PROCEDURE add_user(IN uname VARCHAR(100), OUT new_id INT)
BEGIN
    INSERT INTO users (email) VALUES (uname);
END;

ALTER TABLE orders ADD CONSTRAINT chk_total CHECK (total >= 0);
`

func TestSQLAnalyzer_Tables(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Tables, 1)

	users := res.Tables[0]
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, 2, users.Line)
	require.Len(t, users.Columns, 3, "constraint entries must not become columns")

	id := users.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "INTEGER", id.Type)
	assert.True(t, id.IsPrimaryKey)

	email := users.Columns[1]
	assert.Equal(t, "VARCHAR(255)", email.Type)
	assert.True(t, email.IsNotNull)
	assert.True(t, email.IsUnique)

	balance := users.Columns[2]
	assert.Equal(t, "DECIMAL(10, 2)", balance.Type)
	assert.Equal(t, "0", balance.Default)
	assert.False(t, balance.IsPrimaryKey)
}

func TestSQLAnalyzer_SingleLineTable(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent("create table t (id int primary key, name text)", "t.sql")
	require.Len(t, res.Tables, 1)
	require.Len(t, res.Tables[0].Columns, 2)
	assert.True(t, res.Tables[0].Columns[0].IsPrimaryKey)
	assert.Equal(t, "name", res.Tables[0].Columns[1].Name)
}

func TestSQLAnalyzer_Indexes(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Indexes, 1)

	idx := res.Indexes[0]
	assert.Equal(t, "idx_users_email", idx.Name)
	assert.Equal(t, "users", idx.Table)
	assert.Equal(t, []string{"email"}, idx.Columns)
	assert.True(t, idx.IsUnique)
	assert.Equal(t, 9, idx.Line)
}

func TestSQLAnalyzer_Views(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Views, 1)

	view := res.Views[0]
	assert.Equal(t, "active_users", view.Name)
	assert.Equal(t, 11, view.Line)
	assert.Equal(t, "SELECT * FROM users WHERE active = 1", view.Query)
}

func TestSQLAnalyzer_Triggers(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Triggers, 1)

	trg := res.Triggers[0]
	assert.Equal(t, "trg_audit", trg.Name)
	assert.Equal(t, 14, trg.Line)
	assert.Equal(t, "AFTER", trg.Timing)
	assert.Equal(t, "UPDATE", trg.Event)
	assert.Equal(t, "users", trg.Table)
}

func TestSQLAnalyzer_Procedures(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Procedures, 2)

	fn := res.Procedures[0]
	assert.Equal(t, "get_total", fn.Name)
	assert.Equal(t, "function", fn.Kind)
	assert.Equal(t, "DECIMAL(10, 2)", fn.Returns)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, "user_id", fn.Args[0].Name)
	assert.Equal(t, "INT", fn.Args[0].Type)

	proc := res.Procedures[1]
	assert.Equal(t, "add_user", proc.Name)
	assert.Equal(t, "procedure", proc.Kind)
	require.Len(t, proc.Args, 2)
	assert.Equal(t, "IN", proc.Args[0].Direction)
	assert.Equal(t, "uname", proc.Args[0].Name)
	assert.Equal(t, "VARCHAR(100)", proc.Args[0].Type)
	assert.Equal(t, "OUT", proc.Args[1].Direction)
	assert.Equal(t, "new_id", proc.Args[1].Name)
}

func TestSQLAnalyzer_Constraints(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	require.Len(t, res.Constraints, 2)

	inline := res.Constraints[0]
	assert.Equal(t, "fk_org", inline.Name)
	assert.Equal(t, "foreign_key", inline.Kind)
	assert.Equal(t, "users", inline.Table)
	assert.Equal(t, 6, inline.Line)

	altered := res.Constraints[1]
	assert.Equal(t, "chk_total", altered.Name)
	assert.Equal(t, "check", altered.Kind)
	assert.Equal(t, "orders", altered.Table)
}

func TestSQLAnalyzer_CommentedOutStatementsIgnored(t *testing.T) {
	t.Parallel()

	src := "-- CREATE TABLE ghost (id INT);\n/* CREATE VIEW phantom AS SELECT 1; */\nCREATE TABLE real_one (id INT);\n"
	res := NewSQLAnalyzer().AnalyzeContent(src, "s.sql")
	require.Len(t, res.Tables, 1)
	assert.Equal(t, "real_one", res.Tables[0].Name)
	assert.Empty(t, res.Views)
}

func TestSQLAnalyzer_Patterns(t *testing.T) {
	t.Parallel()

	res := NewSQLAnalyzer().AnalyzeContent(sqlSample, "schema.sql")
	assert.Contains(t, res.Patterns, "ddl")
	assert.Contains(t, res.Patterns, "foreign_keys")
	assert.Contains(t, res.Patterns, "stored_procedures")
	assert.Contains(t, res.Patterns, "triggers")
	assert.Contains(t, res.Patterns, "views")
}
