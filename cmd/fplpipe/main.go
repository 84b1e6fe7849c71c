// Command fplpipe fetches fantasy-platform and analytics data, folds it into
// per-season master datasets and caches every artifact on disk.
package main

func main() {
	Execute()
}
