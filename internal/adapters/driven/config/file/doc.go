// Package file provides file-based implementations of the ConfigStore
// and PromptStore driven ports.
//
// Configuration lives in a TOML file (~/.docvault/config.toml by
// default). Nested tables are flattened into dot-notation keys, so
// [llm] model = "x" is read as "llm.model".
//
// Prompts live as user-editable text files (~/.docvault/prompts/*.txt)
// seeded from embedded defaults on first use.
package file
