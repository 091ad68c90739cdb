// Package prompt composes the text sent to the generation service.
// Sections are wrapped in XML-style tags so the model can tell the task,
// the expected output, and each upstream contribution apart.
package prompt

import "strings"

// Composer builds generation prompts. It satisfies crew.Composer.
type Composer struct{}

// NewComposer creates the default composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose builds the prompt for one agent turn. Empty backstory and
// expected-output sections are omitted. Context entries are emitted in
// arrival order, each in its own <result> block; entries are never
// merged.
func (*Composer) Compose(backstory, task, expectedOutput string, contextEntries []string) string {
	var b strings.Builder

	if backstory != "" {
		writeSection(&b, "backstory", backstory)
	}
	writeSection(&b, "task", task)
	if expectedOutput != "" {
		writeSection(&b, "expected_output", expectedOutput)
	}

	if len(contextEntries) > 0 {
		b.WriteString("<context>\n")
		for _, entry := range contextEntries {
			b.WriteString("<result>\n")
			b.WriteString(entry)
			b.WriteString("\n</result>\n")
		}
		b.WriteString("</context>\n")
	}

	return b.String()
}

// writeSection writes one tagged section followed by a blank line.
func writeSection(b *strings.Builder, tag, body string) {
	b.WriteString("<" + tag + ">\n")
	b.WriteString(body)
	b.WriteString("\n</" + tag + ">\n\n")
}
