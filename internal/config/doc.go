// Package config loads and validates the lacquer configuration file. The
// file supplies run defaults only; command-line flags always override it.
package config
