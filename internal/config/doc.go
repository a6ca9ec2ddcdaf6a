// Package config provides configuration management for wikigrab.
package config
