// Package flags defines the command-line flags for the example socksconnect
// client.
package flags

import (
	"flag"
)

// The program's flags
var (
	// CfgPathFlag is the path to the configuration file
	CfgPathFlag string

	// VerboseFlag raises the logger to DEBUG level, printing every
	// handshake state transition.
	VerboseFlag bool
)

// Default values for the flags
const (
	// defaultConfigFilePath is the default path for the configuration file
	defaultConfigFilePath = "./config.toml"
)

// init initializes the command-line flags
func init() {
	// Set up the configuration file path flag
	flag.StringVar(&CfgPathFlag, "config", defaultConfigFilePath, "path to config file")

	// Set up the verbosity flag
	flag.BoolVar(&VerboseFlag, "verbose", false, "log every handshake state transition")

	// Parse the command-line flags
	flag.Parse()
}
