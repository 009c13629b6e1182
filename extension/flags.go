// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "log-level" -> FlagLogLevel).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagLocal = "local" // Use local config scope
	FlagRaw   = "raw"   // Raw output without rendering

	// String flags

	FlagContent = "content" // Markdown content given inline
	FlagFile    = "file"    // Read content from a file ("-" for stdin)
	FlagFilter  = "filter"  // Database filter as JSON
	FlagSorts   = "sorts"   // Database sorts as JSON
	FlagSource  = "source"  // Audit source filter
	FlagTitle   = "title"   // Page title
	FlagType    = "type"    // Search object type: page or database

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
