/*
Package rewrite applies ordered fragment transformations to file content.

	+----------------+     +----------------+     +----------------+
	|  SourceText    | --> |    Engine      | --> |    Result      |
	| (whole file)   |     | (ordered run)  |     | (new content)  |
	+----------------+     +----------------+     +----------------+

🎯 Purpose:
- Holds the Transformation type (pattern + literal replacement)
- Applies transformations in a fixed order over the evolving text
- Counts matches per transformation
- Enforces exactly-one-match semantics in strict mode

🔄 Flow:
1. Caller reads the target file fully into memory
2. Engine applies each transformation to the output of the previous one
3. Result carries the modified content and per-transformation match counts
4. Caller decides whether to write the result back

📝 Design Philosophy:
Replacements are always inserted literally. The fragments this package
rewrites come from real source files and routinely contain text that regexp
replacement expansion would mangle, so no capture references are supported.
In the default lenient mode a pattern that never matches is a silent no-op,
which keeps a second run over already-migrated content byte-identical;
strict mode turns that silence into a per-transformation error instead.
*/
package rewrite
