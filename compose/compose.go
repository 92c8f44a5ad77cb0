// Package compose renders completed ingestion entries into outgoing chat
// message content.
//
// Text-kind entries are inlined into the message body as fenced blocks
// labeled with the file name and language. Binary-kind entries are carried
// as binary attachment parts, decoded from the registry's base64 content.
package compose

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/poiesic/filedrop/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Message builds the outgoing human message from completed entries plus
// an optional trailing prompt. Entries that are not completed are
// skipped. Binary content that fails to decode returns an error naming
// the entry.
func Message(prompt string, entries []core.Entry) (llms.MessageContent, error) {
	var parts []llms.ContentPart
	for _, entry := range entries {
		if entry.Status != core.StatusCompleted {
			continue
		}

		switch entry.Kind {
		case core.KindBinary:
			raw, err := base64.StdEncoding.DecodeString(entry.Content)
			if err != nil {
				return llms.MessageContent{}, fmt.Errorf("decode %s: %w", entry.Name, err)
			}
			parts = append(parts, llms.BinaryPart(entry.MIMEType, raw))
		default:
			parts = append(parts, llms.TextPart(inlineText(entry)))
		}
	}

	if prompt != "" {
		parts = append(parts, llms.TextPart(prompt))
	}

	return llms.MessageContent{
		Role:  schema.ChatMessageTypeHuman,
		Parts: parts,
	}, nil
}

// Summary returns a one-line-per-file name/type digest of the entries,
// for consumers that reference attachments without carrying their bytes.
func Summary(entries []core.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s (%s, %d bytes)", entry.Name, entry.MIMEType, entry.Size))
	}
	return strings.Join(lines, "\n")
}

func inlineText(entry core.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s (%s)\n", entry.Name, entry.Language)
	b.WriteString("```\n")
	b.WriteString(entry.Content)
	if !strings.HasSuffix(entry.Content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("```")
	return b.String()
}
