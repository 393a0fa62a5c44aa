package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/careerpilot/internal/models"
)

// RenderResumeText lays the resume out as plain text, one section per heading.
// Empty sections are skipped.
func RenderResumeText(r *models.Resume) string {
	var b strings.Builder
	d := r.Data

	b.WriteString(strings.ToUpper(r.ResumeName))
	b.WriteString("\n")

	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}

	if s := strings.TrimSpace(d.Summary); s != "" {
		section("Summary")
		b.WriteString(s + "\n")
	}

	contact := []struct{ label, value string }{
		{"Phone", d.Phone},
		{"Address", d.Address},
		{"LinkedIn", d.LinkedIn},
		{"GitHub", d.GitHub},
		{"Portfolio", d.Portfolio},
	}
	var lines []string
	for _, c := range contact {
		if v := strings.TrimSpace(c.value); v != "" {
			lines = append(lines, c.label+": "+v)
		}
	}
	if len(lines) > 0 {
		section("Contact")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}

	if len(d.Experiences) > 0 {
		section("Experience")
		for _, e := range d.Experiences {
			fmt.Fprintf(&b, "%s", e.Title)
			if e.Company != "" {
				fmt.Fprintf(&b, " at %s", e.Company)
			}
			if e.Duration != "" {
				fmt.Fprintf(&b, " (%s)", e.Duration)
			}
			b.WriteString("\n")
			writeIndented(&b, e.Description)
		}
	}

	if len(d.Projects) > 0 {
		section("Projects")
		for _, p := range d.Projects {
			b.WriteString(p.Name)
			if p.Technologies != "" {
				fmt.Fprintf(&b, " [%s]", p.Technologies)
			}
			b.WriteString("\n")
			writeIndented(&b, p.Description)
		}
	}

	if len(d.Educations) > 0 {
		section("Education")
		for _, e := range d.Educations {
			fmt.Fprintf(&b, "%s, %s", e.Degree, e.Institution)
			if e.Year != "" {
				fmt.Fprintf(&b, " (%s)", e.Year)
			}
			b.WriteString("\n")
			writeIndented(&b, e.Description)
		}
	}

	writeBullets(&b, section, "Certifications", d.Certifications)
	writeBullets(&b, section, "Hobbies", d.Hobbies)

	return b.String()
}

func writeIndented(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("  " + strings.TrimSpace(line) + "\n")
	}
}

func writeBullets(b *strings.Builder, section func(string), title string, items []string) {
	var kept []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return
	}
	section(title)
	for _, it := range kept {
		b.WriteString("- " + it + "\n")
	}
}
