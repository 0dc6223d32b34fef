// File: lixenwraith/envproxy/doc.go

// Package envproxy provides typed access to environment variables and
// declarative, self-documenting configuration classes built on top of them.
//
// Features:
//   - Accessor: typed getters (bool, int, float, string, list, JSON) with defaults
//   - Deterministic key derivation with prefix, uppercasing and dash handling
//   - Empty values behave exactly like missing ones
//   - Configuration classes whose fields inherit strictness, mutability and
//     accessor settings from the class unless they override them
//   - Sample environment file generation from the same declarations
//   - Scoped environment mutation with guaranteed restoration for tests
//   - Snapshots of resolved values as TOML, YAML, JSON or env lines
//
// Accessor:
//
//	env := envproxy.NewAccessor("MYAPP")
//	port, err := env.GetInt("port", 8080)        // MYAPP_PORT
//	hosts, err := env.GetList("allowed-hosts")   // MYAPP_ALLOWED_HOSTS, required
//
// Classes:
//
//	cfg, err := envproxy.NewClassBuilder("myapp").
//	    WithPrefix("MYAPP").
//	    Field("timeout", envproxy.NewField().
//	        WithHint(envproxy.HintFloat).
//	        WithDefault(100.0).
//	        WithDescription("Service timeout.")).
//	    Field("backoff", envproxy.NewField().
//	        WithAnnotation(envproxy.TypeOf[int]())).
//	    Build()
//
//	timeout, err := envproxy.Value[float64](cfg, "timeout")
//	err = cfg.ExportEnv(os.Stdout, envproxy.DefaultExportOptions())
//
// Type resolution:
// A field is read with the getter named by its explicit hint. Without a hint,
// its annotation (a reflect.Type, see TypeOf and DeclareStruct) is simplified
// to a hint. Fields with neither, or with annotations too complicated to map,
// fail in strict mode (the default) and fall back to the raw string with a
// logged warning otherwise.
//
// Thread Safety:
// Accessors and classes are safe for concurrent reads. Writes to the process
// environment are not synchronized beyond what package os provides.
package envproxy
