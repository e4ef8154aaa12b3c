// Package config defines the configuration of a workpost node and its
// default values.
package config
