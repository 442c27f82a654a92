package llm

import (
	"context"
	"fmt"
	"strings"
)

const clusterTitleSystem = "You are an advanced data analyst and copywriter specializing in " +
	"topic synthesis. Your task is to create one concise and representative title " +
	"that best summarizes a group of related issues."

// ClusterTitle asks the model for a one-line theme covering a group of
// issue titles. The response is reduced to a single clean line.
func ClusterTitle(ctx context.Context, p Provider, titles []string) (string, error) {
	var b strings.Builder
	b.WriteString("Critical requirements:\n")
	b.WriteString("The output must be a single sentence or title phrase, ready to be used as a headline.\n")
	b.WriteString("The title should synthesize the main problem, goal, or theme present in the group of issues.\n")
	b.WriteString("Do not add any introduction, explanation, or extra text - return only the generated title.\n")
	b.WriteString("Here are the issue titles grouped into one cluster:\n")
	for _, t := range titles {
		b.WriteString("- ")
		b.WriteString(t)
		b.WriteString("\n")
	}
	b.WriteString("Now generate the cluster title:")

	raw, err := p.CompleteWithSystem(ctx, clusterTitleSystem, b.String())
	if err != nil {
		return "", fmt.Errorf("failed to generate cluster title: %w", err)
	}

	title := sanitizeTitle(raw)
	if title == "" {
		return "", fmt.Errorf("model returned an empty title")
	}
	return title, nil
}

// sanitizeTitle keeps the first line of the response and strips list
// markers and quoting the model tends to add.
func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	title = strings.TrimPrefix(title, "- ")
	title = strings.Trim(title, `"`)
	return strings.TrimSpace(title)
}
