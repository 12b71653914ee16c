// Package types holds the application identity shown by the command line.
package types

const (
	Application = "proto2ts"
	Description = "Convert a ProtoBuf.js JSON description into TypeScript definitions"
	WebSite     = "https://github.com/origadmin/proto2ts"
	UI          = `
                   _       ___  _
  _ __  _ __ ___  | |_ ___|__ \| |_ ___
 | '_ \| '__/ _ \ | __/ _ \ / /| __/ __|
 | |_) | | | (_) || || (_) / /_| |_\__ \
 | .__/|_|  \___/  \__\___/____|\__|___/
 |_|
`
)
