// Package cli constructs the gitscope command-line interface, wiring the
// Cobra root command, configuration loader, structured logging, and the
// repository scan pipeline. It exposes helpers to build reusable application
// instances and to execute the default command as a reusable library.
package cli
