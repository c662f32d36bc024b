// Package utils exposes reusable helpers consumed across the gitscope CLI.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, along with small
// context and writer helpers shared by the command layer.
package utils
