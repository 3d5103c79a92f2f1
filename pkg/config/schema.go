package config

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// suiteSchema is the built-in CUE schema suite files must satisfy. The
// closed structs reject unknown fields, so a typoed key fails loudly
// instead of silently configuring nothing.
const suiteSchema = `
#Tool: close({
	name:         string & !=""
	command:      string & !=""
	args?:        [...string]
	dir?:         string
	timeout_sec?: int & >=0
	iterations?:  int & >=0
	warmup?:      int & >=0
})

close({
	name:          string & !=""
	artifact_dir?: string
	log_ext?:      string
	tools:         [#Tool, ...#Tool]
})
`

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaCtx   *cue.Context
)

// compiledSchema compiles the built-in schema once per process.
func compiledSchema() (cue.Value, *cue.Context, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		schemaValue = schemaCtx.CompileString(suiteSchema)
	})
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, nil, fmt.Errorf("compiling suite schema: %w", err)
	}
	return schemaValue, schemaCtx, nil
}

// validateAgainstSchema unifies the decoded YAML document with the suite
// schema.
func validateAgainstSchema(doc interface{}) error {
	schema, ctx, err := compiledSchema()
	if err != nil {
		return err
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding suite document: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("suite file is invalid: %w", err)
	}
	return nil
}
