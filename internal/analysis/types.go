// Package analysis defines the language-aware fact sheet produced for a
// single source file. Records here are what downstream indexing and
// migration tooling serializes, so field names are part of the contract.
package analysis

// Result is the structured output of analyzing one source file.
//
// The five core collections (Functions, Classes, Imports, Exports, Patterns)
// are always non-nil regardless of language, so consumers see a stable shape.
// The remaining sections are populated only by the analyzer that owns them.
type Result struct {
	Language string `json:"language"`

	Functions []Function `json:"functions"`
	Classes   []Class    `json:"classes"`
	Imports   []Import   `json:"imports"`
	Exports   []string   `json:"exports"`
	Patterns  []string   `json:"patterns"`

	// TypeScript
	Interfaces  []Interface `json:"interfaces,omitempty"`
	TypeAliases []TypeAlias `json:"types,omitempty"`
	Enums       []Enum      `json:"enums,omitempty"`

	// PHP
	Traits     []Trait     `json:"traits,omitempty"`
	Namespaces []Namespace `json:"namespaces,omitempty"`

	// CSS and its dialects
	Selectors    []Selector   `json:"selectors,omitempty"`
	Variables    []Variable   `json:"variables,omitempty"`
	Mixins       []Mixin      `json:"mixins,omitempty"`
	MediaQueries []MediaQuery `json:"media_queries,omitempty"`
	Keyframes    []Keyframes  `json:"keyframes,omitempty"`

	// HTML
	Elements  []Element  `json:"elements,omitempty"`
	Forms     []Form     `json:"forms,omitempty"`
	MetaTags  []MetaTag  `json:"meta_tags,omitempty"`
	Resources []Resource `json:"resources,omitempty"`

	// SQL
	Tables      []Table      `json:"tables,omitempty"`
	Views       []View       `json:"views,omitempty"`
	Procedures  []Procedure  `json:"procedures,omitempty"`
	Triggers    []Trigger    `json:"triggers,omitempty"`
	Indexes     []Index      `json:"indexes,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`

	// Markdown
	Headings []Heading `json:"headings,omitempty"`
	Links    []Link    `json:"links,omitempty"`
}

// NewResult returns a Result with the core collections initialized so the
// serialized form always carries all five keys.
func NewResult(language string) *Result {
	return &Result{
		Language:  language,
		Functions: []Function{},
		Classes:   []Class{},
		Imports:   []Import{},
		Exports:   []string{},
		Patterns:  []string{},
	}
}

// Function describes a function, method, or mixin declaration.
type Function struct {
	Name       string   `json:"name"`
	Line       int      `json:"line_number"`
	Signature  string   `json:"signature,omitempty"`
	Args       []string `json:"args"`
	Doc        string   `json:"docstring,omitempty"`
	Kind       string   `json:"type,omitempty"` // "function", "async_function", "method", "arrow_function"
	IsAsync    bool     `json:"is_async,omitempty"`
	IsStatic   bool     `json:"is_static,omitempty"`
	IsAbstract bool     `json:"is_abstract,omitempty"`
	IsFinal    bool     `json:"is_final,omitempty"`
	Visibility string   `json:"visibility,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
}

// Class describes a class declaration with its members.
type Class struct {
	Name       string     `json:"name"`
	Line       int        `json:"line_number"`
	Extends    string     `json:"extends,omitempty"`
	Implements []string   `json:"implements,omitempty"`
	Methods    []Function `json:"methods"`
	Properties []Property `json:"properties,omitempty"`
	Doc        string     `json:"docstring,omitempty"`
	Decorators []string   `json:"decorators,omitempty"`
	IsAbstract bool       `json:"is_abstract,omitempty"`
	IsFinal    bool       `json:"is_final,omitempty"`
}

// Property describes a class property or interface member.
type Property struct {
	Name       string `json:"name"`
	Line       int    `json:"line_number"`
	Type       string `json:"type,omitempty"`
	Default    string `json:"default,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	IsStatic   bool   `json:"is_static,omitempty"`
	Optional   bool   `json:"optional,omitempty"`
}

// Import describes one import-like statement. Kind distinguishes the style:
// "import", "from_import", "default", "named", "namespace", "side_effect",
// "type_only", "require", "use", "include".
type Import struct {
	Module    string `json:"module"`
	Name      string `json:"name,omitempty"`
	Alias     string `json:"alias,omitempty"`
	Line      int    `json:"line_number"`
	Statement string `json:"statement,omitempty"`
	Kind      string `json:"type"`
	Level     int    `json:"level,omitempty"` // relative import depth (Python)
}

// Interface describes a TypeScript or PHP interface.
type Interface struct {
	Name       string     `json:"name"`
	Line       int        `json:"line_number"`
	Extends    []string   `json:"extends,omitempty"`
	TypeParams string     `json:"type_params,omitempty"`
	Methods    []Function `json:"methods,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// TypeAlias describes a TypeScript type alias.
type TypeAlias struct {
	Name       string `json:"name"`
	Line       int    `json:"line_number"`
	TypeParams string `json:"type_params,omitempty"`
	Value      string `json:"value,omitempty"`
}

// Enum describes a TypeScript enum.
type Enum struct {
	Name    string   `json:"name"`
	Line    int      `json:"line_number"`
	IsConst bool     `json:"is_const,omitempty"`
	Members []string `json:"members"`
}

// Trait describes a PHP trait.
type Trait struct {
	Name    string     `json:"name"`
	Line    int        `json:"line_number"`
	Methods []Function `json:"methods"`
}

// Namespace describes a PHP namespace declaration.
type Namespace struct {
	Name string `json:"name"`
	Line int    `json:"line_number"`
}

// Selector describes one CSS selector with its heuristic specificity.
type Selector struct {
	Text        string      `json:"selector"`
	Line        int         `json:"line_number"`
	Kind        string      `json:"type"` // class, id, at_rule, pseudo, attribute, combinator, descendant, element
	Specificity Specificity `json:"specificity"`
}

// Specificity is the heuristic priority score of a selector. Total is
// ids*100 + (classes+attributes+pseudo-classes)*10 + elements.
type Specificity struct {
	IDs      int `json:"ids"`
	Classes  int `json:"classes"`
	Elements int `json:"elements"`
	Total    int `json:"total"`
}

// Variable describes a stylesheet variable in any dialect.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Line  int    `json:"line_number"`
	Kind  string `json:"type"` // custom_property, scss, less, stylus
}

// Mixin describes an SCSS/LESS/Stylus mixin or function.
type Mixin struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
	Line int      `json:"line_number"`
	Kind string   `json:"type"` // mixin, function
}

// MediaQuery describes one @media prelude.
type MediaQuery struct {
	Query string `json:"query"`
	Line  int    `json:"line_number"`
}

// Keyframes describes a @keyframes block, including vendor-prefixed forms.
type Keyframes struct {
	Name   string `json:"name"`
	Line   int    `json:"line_number"`
	Prefix string `json:"vendor_prefix,omitempty"`
}

// Element aggregates occurrences of one HTML tag. Attributes and Line refer
// to the first occurrence; Count is the total number of occurrences.
type Element struct {
	Tag        string            `json:"tag"`
	Count      int               `json:"count"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Line       int               `json:"line_number"`
}

// Form describes an HTML form with its nested field controls.
type Form struct {
	Action string      `json:"action,omitempty"`
	Method string      `json:"method,omitempty"`
	Line   int         `json:"line_number"`
	Fields []FormField `json:"fields"`
}

// FormField is an input-like control nested inside a form.
type FormField struct {
	Tag  string `json:"tag"`
	Type string `json:"input_type,omitempty"`
	Name string `json:"name,omitempty"`
	Line int    `json:"line_number"`
}

// MetaTag describes a <meta> tag by its name/property and content.
type MetaTag struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	Line    int    `json:"line_number"`
}

// Resource is an external reference (stylesheet, script, image, media).
type Resource struct {
	Tag  string `json:"tag"`
	URL  string `json:"url"`
	Kind string `json:"type"` // stylesheet, script, image, iframe, video, audio, source
	Line int    `json:"line_number"`
}

// Table describes a CREATE TABLE statement.
type Table struct {
	Name    string   `json:"name"`
	Line    int      `json:"line_number"`
	Columns []Column `json:"columns"`
}

// Column describes one column of a table definition.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"data_type,omitempty"`
	IsPrimaryKey bool   `json:"is_primary_key,omitempty"`
	IsNotNull    bool   `json:"is_not_null,omitempty"`
	IsUnique     bool   `json:"is_unique,omitempty"`
	Default      string `json:"default,omitempty"`
}

// View describes a CREATE VIEW statement.
type View struct {
	Name  string `json:"name"`
	Line  int    `json:"line_number"`
	Query string `json:"query,omitempty"`
}

// Procedure describes a stored procedure or SQL function.
type Procedure struct {
	Name    string     `json:"name"`
	Line    int        `json:"line_number"`
	Kind    string     `json:"type"` // procedure, function
	Args    []SQLParam `json:"args"`
	Returns string     `json:"returns,omitempty"`
}

// SQLParam is one procedure/function parameter.
type SQLParam struct {
	Name      string `json:"name"`
	Type      string `json:"data_type,omitempty"`
	Direction string `json:"direction,omitempty"` // IN, OUT, INOUT
	Default   string `json:"default,omitempty"`
}

// Trigger describes a CREATE TRIGGER statement.
type Trigger struct {
	Name   string `json:"name"`
	Line   int    `json:"line_number"`
	Timing string `json:"timing,omitempty"` // BEFORE, AFTER, INSTEAD OF
	Event  string `json:"event,omitempty"`  // INSERT, UPDATE, DELETE
	Table  string `json:"table,omitempty"`
}

// Index describes a CREATE INDEX statement.
type Index struct {
	Name     string   `json:"name"`
	Line     int      `json:"line_number"`
	Table    string   `json:"table,omitempty"`
	Columns  []string `json:"columns,omitempty"`
	IsUnique bool     `json:"is_unique,omitempty"`
}

// Constraint describes a named constraint (inline or ALTER TABLE ... ADD).
type Constraint struct {
	Name  string `json:"name"`
	Line  int    `json:"line_number"`
	Kind  string `json:"type,omitempty"` // primary_key, foreign_key, unique, check
	Table string `json:"table,omitempty"`
}

// Heading describes a Markdown heading in either notation.
type Heading struct {
	Text   string `json:"text"`
	Level  int    `json:"level"`
	Line   int    `json:"line_number"`
	Anchor string `json:"anchor"`
	Style  string `json:"style"` // atx, setext
}

// Link describes a Markdown link of any of the four recognized forms.
type Link struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
	Ref  string `json:"ref,omitempty"`
	Line int    `json:"line_number"`
	Kind string `json:"type"` // inline, reference, definition, image
}
