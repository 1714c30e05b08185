package main

import "fmt"

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	purged, err := deps.Cache.PurgeExpired(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d expired entries purged\n", purged)
	return nil
}
