package adapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22A06B"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93025"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// DiffPrinterAdapter renders a manifest diff for the terminal, one change
// per line prefixed with +, ~ or -.
type DiffPrinterAdapter struct {
	Color bool
}

func NewDiffPrinterAdapter(color bool) DiffPrinterAdapter {
	return DiffPrinterAdapter{Color: color}
}

func (a DiffPrinterAdapter) PrintDiff(w io.Writer, diff types.ManifestDiff) error {
	_, err := io.WriteString(w, a.Render(diff))
	if err != nil {
		return shared.WriteError("failed to print diff", err)
	}
	return nil
}

func (a DiffPrinterAdapter) Render(diff types.ManifestDiff) string {
	if diff.Empty() {
		return "no changes\n"
	}
	var builder strings.Builder
	if len(diff.Requirements) > 0 {
		builder.WriteString(a.style(headingStyle, "require") + "\n")
		for _, change := range diff.Requirements {
			var line string
			switch change.Op {
			case types.ChangeAdded:
				line = fmt.Sprintf("%s %s", change.Name, change.After)
			case types.ChangeRemoved:
				line = fmt.Sprintf("%s %s", change.Name, change.Before)
			default:
				line = fmt.Sprintf("%s %s -> %s", change.Name, change.Before, change.After)
			}
			builder.WriteString(a.line(change.Op, line))
		}
	}
	a.writeChanges(&builder, "extra", diff.Extra)
	a.writeChanges(&builder, "other", diff.Other)
	return builder.String()
}

func (a DiffPrinterAdapter) writeChanges(builder *strings.Builder, heading string, changes []types.Change) {
	if len(changes) == 0 {
		return
	}
	builder.WriteString(a.style(headingStyle, heading) + "\n")
	for _, change := range changes {
		var line string
		switch change.Op {
		case types.ChangeAdded:
			line = fmt.Sprintf("%s: %s", change.PathString(), change.After.String())
		case types.ChangeRemoved:
			line = fmt.Sprintf("%s: %s", change.PathString(), change.Before.String())
		default:
			line = fmt.Sprintf("%s: %s -> %s", change.PathString(), change.Before.String(), change.After.String())
		}
		builder.WriteString(a.line(change.Op, line))
	}
}

func (a DiffPrinterAdapter) line(op types.ChangeOp, text string) string {
	switch op {
	case types.ChangeAdded:
		return "  " + a.style(addedStyle, "+ "+text) + "\n"
	case types.ChangeRemoved:
		return "  " + a.style(removedStyle, "- "+text) + "\n"
	default:
		return "  " + a.style(changedStyle, "~ "+text) + "\n"
	}
}

func (a DiffPrinterAdapter) style(style lipgloss.Style, text string) string {
	if !a.Color {
		return text
	}
	return style.Render(text)
}

var _ ports.DiffPrinterPort = DiffPrinterAdapter{}
