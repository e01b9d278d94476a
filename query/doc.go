// Package query parses SPL (Select/Plot Language) queries into a syntax tree.
//
// A query selects columns, optionally filters, groups and windows the rows,
// and may carry a PLOT directive describing how the result is charted:
//
//	PLOT BAR(department, total)
//	SELECT department, SUM(salary) AS total
//	WHERE active = 1 AND (age >= 30 OR title = 'lead')
//	GROUPBY department
//	LIMIT 10 OFFSET 20
//
// # Basic Usage
//
//	q, err := query.Parse("SELECT name, AVG(score) AS avg WHERE score > 50 GROUPBY name")
//	if err != nil {
//	    var se *query.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Printf("bad query at offset %d: %s\n", se.Pos, se.Msg)
//	    }
//	    return err
//	}
//
// Parse is shorthand for building the pipeline by hand:
//
//	lexer := query.NewLexer(text)
//	q, err := query.NewParser(lexer).Parse()
//
// The parser reads one token of lookahead from its TokenSource and never
// backtracks. It stops at the first malformed token and returns a
// *SyntaxError; no partial query is ever returned.
//
// # Caching
//
// Services that see the same query text repeatedly can share a Cache. Cached
// queries are shared between callers and must be treated as read-only:
//
//	cache := query.NewCache(query.DefaultCacheSize)
//	q, err := cache.Parse(text)
//
// # Grammar
//
//	query         := plotClause? selectClause whereClause? groupByClause? limitOffset? EOF
//	plotClause    := "PLOT" plotFn "(" IDENT "," IDENT ")"
//	selectClause  := "SELECT" column ("," column)*
//	column        := (aggFn "(" IDENT? ")" | IDENT) ("AS" IDENT)?
//	whereClause   := "WHERE" condition
//	condition     := andGroup ("OR" andGroup)*
//	andGroup      := conditionUnit ("AND" conditionUnit)*
//	conditionUnit := comparison | "(" condition ")"
//	comparison    := IDENT compareOp value
//	groupByClause := "GROUPBY" IDENT
//	limitOffset   := "LIMIT" NUMBER ("OFFSET" NUMBER)?
//
// Keywords and function names are case-sensitive. AND binds tighter than OR.
// A group with a single operand is returned as that operand, so "(a > 1)"
// parses to a bare *Gt. Relational operators (>, >=, <, <=) take numbers
// only; = and != take a string, a number or NULL. Negative numbers are not
// part of the language.
//
// # Syntax Tree
//
// SPLQuery and the types it references are plain data. WhereCondition is a
// closed sum over *And, *Or, *Gt, *Gte, *Lt, *Lte, *Eq and *Neq; PlotClause
// is either *CategoricalPlot (BAR) or *PointPlot (LINE, SCATTER). All of them
// encode to JSON in the shape consumed by rendering front ends:
//
//	{"plotClause":{"plotFunction":"BAR","categoriesIdentifier":"c","valuesIdentifier":"v"},
//	 "selectColumns":[{"identifier":"c","column":"c"}],
//	 "whereCondition":{"or":[{"eq":{"key":"a","value":1}},{"gt":{"key":"b","value":2}}]}}
//
// # Concurrency
//
// A Lexer/Parser pair is single-use and holds unsynchronized cursor state.
// Parse distinct queries concurrently by giving each its own pair, or share a
// Cache, which is safe for concurrent use.
package query
