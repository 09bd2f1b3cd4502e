// Package envfile reads and writes environment-definition files.
//
// A file holds one variable per line in the form [export ]KEY=VALUE. Lines
// starting with # are comments and blank lines are ignored. There is no
// quoting, no escaping and no multi-line value support.
//
// Loading writes every parsed variable into an Environ, which defaults to the
// process environment:
//
//	pairs, err := envfile.Load(".env", envfile.Options{
//		IgnoreMissing:   true,
//		ExcludeOverride: []string{"DATABASE_URL"},
//	})
//
// Tests can pass a MapEnviron and an afero.MemMapFs so that nothing touches
// the real process state or disk.
package envfile
