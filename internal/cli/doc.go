// Package cli implements the enver command tree.
//
//	enver list   [--json]                      print the variables in the env file
//	enver get    KEY [--type T] [--default D]  print one variable, typed
//	enver write  KEY=VALUE...                  write variables to the env file
//	enver exec   -- CMD [ARGS...]              run CMD with the env file loaded
//
// Every command shares the --file, --ignore-missing, --exclude-override,
// --log-level, --environment and --config flags resolved by package config.
package cli
