package gitinfo

import (
	"context"
	"errors"

	"github.com/dshills/stormline/internal/statusline/tiles"
)

// VarStore holds the variables the git tiles read.
type VarStore interface {
	SetVar(scope tiles.VarScope, name string, v any) error
	DelVar(scope tiles.VarScope, name string) error
}

// Publish stores the branch of dir and, when file is set, the change counts
// of file as a buffer variable. Outside a repository, or without git
// installed, the variables are removed and Publish reports false.
func (c *Client) Publish(ctx context.Context, store VarStore, dir, file string) (bool, error) {
	branch, err := c.Branch(ctx, dir)
	if err != nil {
		if errors.Is(err, ErrNotRepository) || errors.Is(err, ErrGitNotFound) {
			return false, unset(store, file != "")
		}
		return false, err
	}
	if err := store.SetVar(tiles.GlobalScope, tiles.GitHeadVar, branch); err != nil {
		return false, err
	}
	if file == "" {
		return true, nil
	}

	d, err := c.Diff(ctx, dir, file)
	if err != nil {
		return true, err
	}
	return true, store.SetVar(tiles.BufferScope, tiles.GitStatusVar, map[string]any{
		"head":    branch,
		"added":   d.Added,
		"changed": d.Changed,
		"removed": d.Removed,
	})
}

func unset(store VarStore, buffer bool) error {
	if err := store.DelVar(tiles.GlobalScope, tiles.GitHeadVar); err != nil {
		return err
	}
	if !buffer {
		return nil
	}
	return store.DelVar(tiles.BufferScope, tiles.GitStatusVar)
}
