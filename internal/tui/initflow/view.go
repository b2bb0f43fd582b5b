package initflow

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-factory/internal/tui"
)

// RenderSuccess renders a summary of the descriptor created by the flow.
func RenderSuccess(result *Result) string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("✓ Descriptor Created"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Wrote %s for %s (%s)\n", result.Path, result.Answers.Name, result.Answers.Type))
	b.WriteString("\n")
	b.WriteString(string(result.Descriptor))

	return b.String()
}
