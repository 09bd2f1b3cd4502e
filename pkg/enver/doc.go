// Package enver provides typed, default-aware access to variables loaded from
// an env file.
//
// An Enver is built once from a file (or from already parsed pairs) and never
// reloads. Getters re-parse the cached strings on every call:
//
//	e, err := enver.New(".env", envfile.Options{IgnoreMissing: true})
//	if err != nil {
//		return err
//	}
//	port := e.Int("PORT", 8080)
//	debug := e.Bool("DEBUG", false)
//	ids, err := enver.ListOf(e, "SHARD_IDS", []int{0}, enver.AsInt)
//
// Every getter returns its default when the variable is absent. Int, Float,
// Bool and Map also return the default, with a log line, when the value does
// not parse. ListOf is the exception: an element that fails conversion is
// returned as an error.
package enver
