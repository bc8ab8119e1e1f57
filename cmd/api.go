package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request against football-data.org
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	useJSON := cmd.Bool("json")

	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if useJSON {
		if resp.IsJSON {
			return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
		}
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
		return nil
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APICheck verifies that the configured token is accepted upstream.
func (r *Runner) APICheck(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking API token")

	name, err := r.catalog.CheckToken(ctx)
	if err != nil {
		r.writePlain("✗ Token check failed: %v\n", err)
		return err
	}

	r.writePlain("✓ Token accepted (fetched competition: %s)\n", name)
	return nil
}
