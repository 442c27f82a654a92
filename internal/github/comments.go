package github

import (
	"context"
	"fmt"
)

// ListComments fetches comments on an issue, in creation order.
func (c *Client) ListComments(ctx context.Context, org, repo string, number int) ([]Comment, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments", org, repo, number)

	var comments []Comment
	if err := c.rest.Get(endpoint, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
