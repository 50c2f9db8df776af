// Package shell provides the dialect adapters for environment
// synchronization. Each adapter renders the one-time activation script
// (hook registration, PATH augmentation, initial sync) and translates the
// controller's abstract actions into native shell constructs.
package shell
