// Package config loads and validates benchmark suite files.
//
// A suite file is YAML describing the tools to benchmark:
//
//	name: package managers
//	artifact_dir: ./artifacts
//	tools:
//	  - name: npm
//	    command: npm
//	    args: [install]
//	    iterations: 5
//
// Validation happens in two layers: the raw document is unified with a
// built-in CUE schema, which catches unknown fields and type mismatches
// with precise positions, and the decoded structs are then checked with
// struct-tag validation for the value constraints the schema does not
// express.
package config
