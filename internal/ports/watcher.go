package ports

// Watcher monitors lexical data files for out-of-process regeneration and
// triggers a reload. The adapter (fsnotify) must debounce rapid events
// (regenerators write in bursts) before invoking onChange. Only one Watch
// call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the given files. onChange is called with the
	// absolute path of each changed file. The callback may be invoked from
	// any goroutine. Returns an error if no file's directory exists or
	// permissions are insufficient.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
