package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

// inspectCmd dumps a user's persisted records from the profile store.
// Opens badger read-only so it is safe against a running engine's files
// after shutdown.
func inspectCmd() *cobra.Command {
	var (
		dataPath string
		username string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump persisted records from the profile store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(dataPath, username)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data-path", "./data", "Profile store directory")
	cmd.Flags().StringVar(&username, "user", "", "Dump only this user's namespace")
	return cmd
}

func runInspect(dataPath, username string) error {
	opts := badger.DefaultOptions(dataPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open store at %s: %w", dataPath, err)
	}
	defer db.Close()

	prefix := []byte("user:")
	if username != "" {
		prefix = []byte("user:" + username + ":")
	}

	fmt.Println("=== Profile Store ===")
	return db.View(func(txn *badger.Txn) error {
		if item, err := txn.Get([]byte("identity")); err == nil {
			_ = item.Value(func(val []byte) error {
				fmt.Printf("identity: %s\n\n", val)
				return nil
			})
		}

		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(val []byte) error {
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, val, "", "  "); err != nil {
					pretty.Write(val)
				}
				fmt.Printf("%s:\n%s\n\n", key, pretty.String())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
