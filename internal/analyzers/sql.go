package analyzers

import (
	"regexp"
	"strings"

	"codeatlas/internal/analysis"
)

// SQLAnalyzer extracts DDL structure (tables, views, procedures, triggers,
// indexes, constraints) from SQL scripts. Matching is case-insensitive and
// statement windows are bounded by parenthesis depth, so a whole CREATE TABLE
// on one line parses the same as a formatted multi-line one.
type SQLAnalyzer struct {
	baseAnalyzer
}

// NewSQLAnalyzer creates the SQL analyzer.
func NewSQLAnalyzer() *SQLAnalyzer {
	return &SQLAnalyzer{
		baseAnalyzer: newBaseAnalyzer("sql",
			[]string{".sql", ".ddl", ".psql", ".mysql"},
			sqlComplexityWeights, "--"),
	}
}

var sqlComplexityWeights = map[string]float64{
	"JOIN":     1,
	"WHERE":    0.5,
	"GROUP BY": 1,
	"HAVING":   1.5,
	"UNION":    1.5,
	"CASE":     1,
	"EXISTS":   1,
	"OVER":     1.5,
	"WITH":     1,
}

var (
	sqlTablePattern = regexp.MustCompile(`(?i)\bCREATE\s+(?:TEMP(?:ORARY)?\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".` + "`" + `]+)`)

	sqlViewPattern = regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?(?:MATERIALIZED\s+)?VIEW\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".` + "`" + `]+)`)

	sqlProcPattern = regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?(PROCEDURE|FUNCTION)\s+([\w".` + "`" + `]+)`)

	sqlTriggerPattern = regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?TRIGGER\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".` + "`" + `]+)`)

	sqlIndexPattern = regexp.MustCompile(`(?i)\bCREATE\s+(UNIQUE\s+)?INDEX\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".` + "`" + `]+)\s+ON\s+([\w".` + "`" + `]+)(?:\s*\(([^)]*)\))?`)

	sqlConstraintPattern = regexp.MustCompile(`(?i)\bCONSTRAINT\s+([\w".` + "`" + `]+)\s+(PRIMARY\s+KEY|FOREIGN\s+KEY|UNIQUE|CHECK)`)

	sqlAlterAddPattern = regexp.MustCompile(`(?i)\bALTER\s+TABLE\s+(?:ONLY\s+)?([\w".` + "`" + `]+)\s+ADD\s+CONSTRAINT\s+([\w".` + "`" + `]+)\s+(PRIMARY\s+KEY|FOREIGN\s+KEY|UNIQUE|CHECK)`)

	sqlTriggerTiming = regexp.MustCompile(`(?i)\b(BEFORE|AFTER|INSTEAD\s+OF)\b`)
	sqlTriggerEvent  = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE)\b`)
	sqlTriggerTable  = regexp.MustCompile(`(?i)\bON\s+([\w".` + "`" + `]+)`)

	sqlReturnsPattern = regexp.MustCompile(`(?i)\bRETURNS\s+(\w+(?:\s*\(\s*\d+(?:\s*,\s*\d+)?\s*\))?)`)

	sqlParamPattern = regexp.MustCompile(`(?i)^(?:(IN|OUT|INOUT)\s+)?([\w"` + "`" + `@]+)\s+(.+?)(?:\s+(?:DEFAULT|=)\s+(.+))?$`)
)

// Entries inside a CREATE TABLE body that are table-level constraints rather
// than columns.
var sqlConstraintHeads = map[string]bool{
	"PRIMARY": true, "FOREIGN": true, "UNIQUE": true, "CHECK": true,
	"CONSTRAINT": true, "KEY": true, "INDEX": true, "EXCLUDE": true,
}

// Keywords that terminate the data-type portion of a column entry.
var sqlColumnStops = map[string]bool{
	"PRIMARY": true, "NOT": true, "NULL": true, "UNIQUE": true,
	"DEFAULT": true, "REFERENCES": true, "CHECK": true, "CONSTRAINT": true,
	"AUTO_INCREMENT": true, "AUTOINCREMENT": true, "GENERATED": true,
	"COLLATE": true, "COMMENT": true,
}

var sqlPatternProbes = []patternProbe{
	{"ddl", []string{"CREATE ", "create ", "ALTER ", "alter ", "DROP ", "drop "}},
	{"joins", []string{"JOIN", "join"}},
	{"transactions", []string{"BEGIN", "COMMIT", "ROLLBACK", "begin", "commit", "rollback"}},
	{"foreign_keys", []string{"FOREIGN KEY", "foreign key", "REFERENCES", "references"}},
	{"stored_procedures", []string{"PROCEDURE", "procedure", "FUNCTION", "function"}},
	{"triggers", []string{"TRIGGER", "trigger"}},
	{"views", []string{"VIEW", "view"}},
	{"cte", []string{"WITH ", "with "}},
	{"aggregation", []string{"GROUP BY", "group by", "COUNT(", "count(", "SUM(", "sum("}},
	{"window_functions", []string{"OVER (", "OVER(", "over (", "over("}},
}

// AnalyzeContent extracts the DDL fact sheet. Comments are blanked first so
// commented-out statements are not reported.
func (a *SQLAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	lines := strings.Split(stripSQLComments(content), "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := sqlTablePattern.FindStringSubmatch(line); m != nil {
			table := analysis.Table{
				Name:    sqlIdent(m[1]),
				Line:    i + 1,
				Columns: []analysis.Column{},
			}
			body, end := sqlParenWindow(lines, i, sqlTablePattern.FindStringIndex(line)[1])
			for _, entry := range splitArgs(body) {
				if col := parseSQLColumn(entry); col != nil {
					table.Columns = append(table.Columns, *col)
				}
			}
			res.Tables = append(res.Tables, table)
			a.extractInlineConstraints(lines, i, end, table.Name, res)
			i = end
			continue
		}

		if m := sqlViewPattern.FindStringSubmatch(line); m != nil {
			view := analysis.View{Name: sqlIdent(m[1]), Line: i + 1}
			view.Query, i = sqlViewQuery(lines, i)
			res.Views = append(res.Views, view)
			continue
		}

		if m := sqlProcPattern.FindStringSubmatch(line); m != nil {
			proc := analysis.Procedure{
				Name: sqlIdent(m[2]),
				Line: i + 1,
				Kind: strings.ToLower(m[1]),
				Args: []analysis.SQLParam{},
			}
			body, end := sqlParenWindow(lines, i, sqlProcPattern.FindStringIndex(line)[1])
			for _, entry := range splitArgs(body) {
				if param := parseSQLParam(entry); param != nil {
					proc.Args = append(proc.Args, *param)
				}
			}
			proc.Returns = sqlReturns(lines, end)
			res.Procedures = append(res.Procedures, proc)
			i = end
			continue
		}

		if m := sqlTriggerPattern.FindStringSubmatch(line); m != nil {
			res.Triggers = append(res.Triggers, sqlTrigger(lines, i, sqlIdent(m[1])))
			continue
		}

		if m := sqlIndexPattern.FindStringSubmatch(line); m != nil {
			index := analysis.Index{
				Name:     sqlIdent(m[2]),
				Line:     i + 1,
				Table:    sqlIdent(m[3]),
				IsUnique: m[1] != "",
			}
			for _, col := range splitArgs(m[4]) {
				index.Columns = append(index.Columns, sqlIdent(strings.Fields(col)[0]))
			}
			res.Indexes = append(res.Indexes, index)
			continue
		}

		if m := sqlAlterAddPattern.FindStringSubmatch(line); m != nil {
			res.Constraints = append(res.Constraints, analysis.Constraint{
				Name:  sqlIdent(m[2]),
				Line:  i + 1,
				Kind:  sqlConstraintKind(m[3]),
				Table: sqlIdent(m[1]),
			})
			continue
		}
	}

	detectPatterns(content, sqlPatternProbes, res)
	return res
}

// stripSQLComments blanks -- line comments and /* */ blocks while keeping
// the newline structure, so line numbers survive.
func stripSQLComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	runes := []rune(content)
	inBlock := false
	inLine := false
	var quote rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\n':
			inLine = false
			b.WriteRune('\n')
		case inBlock:
			if r == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				inBlock = false
				i++
				b.WriteString("  ")
			} else {
				b.WriteRune(' ')
			}
		case inLine:
			b.WriteRune(' ')
		case quote != 0:
			if r == quote {
				quote = 0
			}
			b.WriteRune(r)
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			inLine = true
			i++
			b.WriteString("  ")
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			inBlock = true
			i++
			b.WriteString("  ")
		case r == '\'' || r == '"':
			quote = r
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sqlParenWindow collects the text between the first '(' at or after
// startCol on line startIdx and its matching ')', joining lines with
// spaces. It returns the collected interior and the 0-based index of the
// line holding the closing paren (startIdx when none is found).
func sqlParenWindow(lines []string, startIdx, startCol int) (string, int) {
	depth := 0
	opened := false
	var body strings.Builder

	for i := startIdx; i < len(lines); i++ {
		line := lines[i]
		col := 0
		if i == startIdx {
			if startCol < len(line) {
				col = startCol
			} else {
				col = len(line)
			}
		}
		for _, r := range line[col:] {
			switch r {
			case '(':
				depth++
				if depth == 1 {
					opened = true
					continue
				}
			case ')':
				depth--
				if opened && depth == 0 {
					return body.String(), i
				}
			}
			if opened {
				body.WriteRune(r)
			}
		}
		if opened {
			body.WriteRune(' ')
		} else if i > startIdx {
			// No parameter list follows the header.
			return "", startIdx
		}
	}
	return body.String(), len(lines) - 1
}

// parseSQLColumn parses one CREATE TABLE entry into a column record, or
// returns nil for table-level constraint entries.
func parseSQLColumn(entry string) *analysis.Column {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return nil
	}
	if sqlConstraintHeads[strings.ToUpper(fields[0])] {
		return nil
	}

	col := analysis.Column{Name: sqlIdent(fields[0])}
	var typeParts []string
	for _, field := range fields[1:] {
		if sqlColumnStops[strings.ToUpper(field)] {
			break
		}
		typeParts = append(typeParts, field)
	}
	col.Type = strings.Join(typeParts, " ")

	upper := strings.ToUpper(entry)
	col.IsPrimaryKey = strings.Contains(upper, "PRIMARY KEY")
	col.IsNotNull = strings.Contains(upper, "NOT NULL")
	col.IsUnique = strings.Contains(upper, "UNIQUE")

	if idx := strings.Index(upper, "DEFAULT "); idx != -1 {
		def := strings.TrimSpace(entry[idx+len("DEFAULT "):])
		if end := strings.IndexAny(def, " \t"); end != -1 {
			def = def[:end]
		}
		col.Default = def
	}
	return &col
}

// parseSQLParam parses one procedure/function parameter.
func parseSQLParam(entry string) *analysis.SQLParam {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}
	m := sqlParamPattern.FindStringSubmatch(entry)
	if m == nil {
		return &analysis.SQLParam{Name: entry}
	}
	return &analysis.SQLParam{
		Name:      sqlIdent(m[2]),
		Type:      strings.TrimSpace(m[3]),
		Direction: strings.ToUpper(m[1]),
		Default:   strings.TrimSpace(m[4]),
	}
}

// sqlReturns looks for a RETURNS clause on the parameter-list closing line
// or the two lines after it.
func sqlReturns(lines []string, closeIdx int) string {
	for i := closeIdx; i < len(lines) && i <= closeIdx+2; i++ {
		if m := sqlReturnsPattern.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
	}
	return ""
}

// sqlTrigger reads timing, event, and target table from the trigger header
// and up to three following lines.
func sqlTrigger(lines []string, idx int, name string) analysis.Trigger {
	trigger := analysis.Trigger{Name: name, Line: idx + 1}

	window := lines[idx]
	for i := idx + 1; i < len(lines) && i <= idx+3; i++ {
		window += " " + lines[i]
	}
	if m := sqlTriggerTiming.FindStringSubmatch(window); m != nil {
		trigger.Timing = strings.ToUpper(strings.Join(strings.Fields(m[1]), " "))
	}
	if m := sqlTriggerEvent.FindStringSubmatch(window); m != nil {
		trigger.Event = strings.ToUpper(m[1])
	}
	if m := sqlTriggerTable.FindStringSubmatch(window); m != nil {
		trigger.Table = sqlIdent(m[1])
	}
	return trigger
}

// sqlViewQuery collects the text after the first AS up to the terminating
// semicolon or the next CREATE statement. Returns the query and the 0-based
// index of the last consumed line.
func sqlViewQuery(lines []string, idx int) (string, int) {
	var parts []string
	collecting := false

	for i := idx; i < len(lines); i++ {
		line := lines[i]
		if i > idx && sqlNextDDL.MatchString(line) {
			return strings.TrimSpace(strings.Join(parts, " ")), i - 1
		}

		if !collecting {
			if loc := sqlViewAS.FindStringIndex(line); loc != nil {
				collecting = true
				line = line[loc[1]:]
			} else {
				continue
			}
		}

		if semi := strings.Index(line, ";"); semi != -1 {
			parts = append(parts, line[:semi])
			return strings.TrimSpace(strings.Join(parts, " ")), i
		}
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(parts, " ")), len(lines) - 1
}

var (
	sqlViewAS  = regexp.MustCompile(`(?i)\bAS\b`)
	sqlNextDDL = regexp.MustCompile(`(?i)^\s*CREATE\s`)
)

// extractInlineConstraints reports named CONSTRAINT clauses found inside a
// CREATE TABLE body, attributed to that table.
func (a *SQLAnalyzer) extractInlineConstraints(lines []string, start, end int, table string, res *analysis.Result) {
	for i := start; i <= end && i < len(lines); i++ {
		for _, m := range sqlConstraintPattern.FindAllStringSubmatch(lines[i], -1) {
			res.Constraints = append(res.Constraints, analysis.Constraint{
				Name:  sqlIdent(m[1]),
				Line:  i + 1,
				Kind:  sqlConstraintKind(m[2]),
				Table: table,
			})
		}
	}
}

// sqlConstraintKind normalizes a matched constraint keyword to its tag.
func sqlConstraintKind(keyword string) string {
	normalized := strings.ToUpper(strings.Join(strings.Fields(keyword), " "))
	switch normalized {
	case "PRIMARY KEY":
		return "primary_key"
	case "FOREIGN KEY":
		return "foreign_key"
	case "UNIQUE":
		return "unique"
	case "CHECK":
		return "check"
	}
	return strings.ToLower(normalized)
}

// sqlIdent strips quoting and any schema qualifier from an identifier.
func sqlIdent(raw string) string {
	raw = strings.Trim(raw, "`\"")
	if idx := strings.LastIndex(raw, "."); idx != -1 {
		raw = raw[idx+1:]
	}
	return strings.Trim(raw, "`\"")
}
