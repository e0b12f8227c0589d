// Package driving defines the service interfaces exposed to the HTTP
// adapter and the CLI.
package driving
