// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of the wizard document.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	name := strings.TrimSpace(doc.PersonalInfo.FirstName + " " + doc.PersonalInfo.LastName)
	if name == "" {
		name = "(not set)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orUnset(doc.JobTitle)))
	sb.WriteString(fmt.Sprintf("Step:     %d of %d (%s)\n", doc.CurrentStep, int(wizard.MaxStep), wizard.Step(doc.CurrentStep)))
	if doc.CurrentSection != "" {
		sb.WriteString(fmt.Sprintf("Section:  %s\n", doc.CurrentSection))
	}
	if doc.IsAIEnhanced {
		sb.WriteString("Enhanced: yes\n")
	}
	sb.WriteString("\n")

	if len(doc.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(doc.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", doc.Skills[i]))
		}
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Work experience:  %d entr%s\n", len(doc.WorkExperience), plural(len(doc.WorkExperience))))
	sb.WriteString(fmt.Sprintf("Education:        %d entr%s\n", len(doc.Education), plural(len(doc.Education))))
	sb.WriteString(fmt.Sprintf("Certifications:   %d entr%s", len(doc.Certifications), plural(len(doc.Certifications))))

	p.printBox("RESUME DOCUMENT", sb.String())
}

// PrintExperience outputs the work history entries with their skills.
func (p *Printer) PrintExperience(entries []types.WorkExperienceItem) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total entries: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, entry.Position))
		sb.WriteString(fmt.Sprintf("    %s", entry.Company))
		if entry.StartDate != "" || entry.EndDate != "" {
			sb.WriteString(fmt.Sprintf("  (%s – %s)", entry.StartDate, entry.EndDate))
		}
		sb.WriteString("\n")
		if len(entry.Skills) > 0 {
			skills := strings.Join(entry.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("WORK EXPERIENCE", sb.String())
}

// PrintEnhancementDiff outputs which document fields an enhancement touched.
func (p *Printer) PrintEnhancementDiff(enhanced *types.EnhancedResume) {
	if enhanced == nil || enhanced.Empty() {
		p.printBox("AI ENHANCEMENT", "No fields changed")
		return
	}

	var sb strings.Builder
	sb.WriteString("Fields updated:\n\n")

	if len(enhanced.PersonalInfo) > 0 {
		sb.WriteString("  • personal info\n")
	}
	if enhanced.JobTitle != nil {
		sb.WriteString(fmt.Sprintf("  • job title: %s\n", truncate(*enhanced.JobTitle, 40)))
	}
	if enhanced.CareerSummary != nil {
		sb.WriteString(fmt.Sprintf("  • career summary: %s\n", truncate(*enhanced.CareerSummary, 35)))
	}
	if len(enhanced.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("  • skills (%d)\n", len(enhanced.Skills)))
	}
	if len(enhanced.WorkExperience) > 0 {
		sb.WriteString(fmt.Sprintf("  • work experience (%d entries)\n", len(enhanced.WorkExperience)))
	}
	if len(enhanced.Education) > 0 {
		sb.WriteString(fmt.Sprintf("  • education (%d entries)\n", len(enhanced.Education)))
	}
	if len(enhanced.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("  • certifications (%d entries)\n", len(enhanced.Certifications)))
	}

	p.printBox("AI ENHANCEMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
