// Package config handles loading and validation of the enver command's own
// settings from flags, ENVER_* environment variables and an optional
// enver.yaml file. It defines which env file to read, how missing files and
// protected variables are treated, and how the command logs.
package config
