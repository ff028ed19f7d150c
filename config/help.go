package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Steady backend - income steadiness scoring service

Usage:
  steady [flags]

Flags:
  -config-path string   path to the config yaml file (default "config.yaml")
  -help                 show this message

Configuration can also be supplied via environment variables; see config.yaml
for the full set of keys.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
