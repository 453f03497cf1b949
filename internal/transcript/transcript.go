// Package transcript renders a ticket channel's message history into a
// standalone HTML document for the ticket log.
package transcript

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const fetchPageSize = 100

// MessageFetcher is the slice of discordgo.Session used to page through
// channel history
type MessageFetcher interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

type entry struct {
	Author      string
	Timestamp   string
	Content     string
	Attachments []attachment
}

type attachment struct {
	Filename string
	URL      string
}

type document struct {
	ChannelName string
	ExportedAt  string
	Entries     []entry
}

var page = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>#{{.ChannelName}} transcript</title>
<style>
body { font-family: sans-serif; background: #313338; color: #dbdee1; margin: 0; padding: 16px; }
.header { border-bottom: 1px solid #3f4147; padding-bottom: 8px; margin-bottom: 16px; }
.message { margin-bottom: 12px; }
.author { font-weight: bold; color: #f2f3f5; }
.timestamp { color: #949ba4; font-size: 0.75em; margin-left: 6px; }
.content { white-space: pre-wrap; }
.attachment a { color: #00a8fc; }
</style>
</head>
<body>
<div class="header"><h2>#{{.ChannelName}}</h2><span class="timestamp">Exported {{.ExportedAt}}</span></div>
{{range .Entries}}<div class="message">
<span class="author">{{.Author}}</span><span class="timestamp">{{.Timestamp}}</span>
<div class="content">{{.Content}}</div>
{{range .Attachments}}<div class="attachment"><a href="{{.URL}}">{{.Filename}}</a></div>
{{end}}</div>
{{end}}</body>
</html>
`))

// Export fetches the full history of a channel and renders it as HTML,
// oldest message first
func Export(fetcher MessageFetcher, channelID, channelName string) (string, error) {
	messages, err := fetchAll(fetcher, channelID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel history: %w", err)
	}
	return Render(channelName, messages)
}

// fetchAll pages backwards through the channel until history is exhausted
func fetchAll(fetcher MessageFetcher, channelID string) ([]*discordgo.Message, error) {
	var all []*discordgo.Message
	beforeID := ""

	for {
		batch, err := fetcher.ChannelMessages(channelID, fetchPageSize, beforeID, "", "")
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)
		beforeID = batch[len(batch)-1].ID

		if len(batch) < fetchPageSize {
			break
		}
	}

	// Discord returns newest first; the transcript reads top to bottom
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	return all, nil
}

// Render produces the HTML document for an already-fetched message list
// ordered oldest first
func Render(channelName string, messages []*discordgo.Message) (string, error) {
	doc := document{
		ChannelName: channelName,
		ExportedAt:  time.Now().UTC().Format("02/01/2006 15:04"),
	}

	for _, m := range messages {
		if m.Author == nil {
			continue
		}

		e := entry{
			Author:    m.Author.Username,
			Timestamp: m.Timestamp.UTC().Format("02/01/2006 15:04"),
			Content:   m.Content,
		}
		for _, a := range m.Attachments {
			e.Attachments = append(e.Attachments, attachment{
				Filename: a.Filename,
				URL:      a.URL,
			})
		}
		doc.Entries = append(doc.Entries, e)
	}

	var sb strings.Builder
	if err := page.Execute(&sb, doc); err != nil {
		return "", fmt.Errorf("failed to render transcript: %w", err)
	}
	return sb.String(), nil
}
