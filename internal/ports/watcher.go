package ports

// Watcher monitors a fixed set of files for changes.
type Watcher interface {
	// Watch starts monitoring the given files. onChange is called with the
	// absolute path of each changed file. Events are debounced by the
	// adapter; Watch does not block.
	Watch(paths []string, onChange func(path string)) error

	// Stop stops watching and releases resources. Safe to call twice.
	Stop() error
}
