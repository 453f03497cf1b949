package transcript

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// fakeFetcher serves canned pages of channel history, newest first
type fakeFetcher struct {
	messages []*discordgo.Message
	calls    int
}

func (f *fakeFetcher) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.calls++

	start := 0
	if beforeID != "" {
		for idx, m := range f.messages {
			if m.ID == beforeID {
				start = idx + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(f.messages) {
		end = len(f.messages)
	}
	if start >= len(f.messages) {
		return nil, nil
	}
	return f.messages[start:end], nil
}

func testMessage(id, author, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Content:   content,
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Author:    &discordgo.User{Username: author},
	}
}

func TestExportOrdersOldestFirst(t *testing.T) {
	fetcher := &fakeFetcher{
		// Newest first, as Discord returns them
		messages: []*discordgo.Message{
			testMessage("3", "staff", "closing now"),
			testMessage("2", "alice", "my rank is gone"),
			testMessage("1", "alice", "hello"),
		},
	}

	html, err := Export(fetcher, "chan-1", "support-ticket-alice")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	first := strings.Index(html, "hello")
	last := strings.Index(html, "closing now")
	if first == -1 || last == -1 {
		t.Fatalf("transcript missing message content:\n%s", html)
	}
	if first > last {
		t.Error("transcript is not ordered oldest first")
	}
	if !strings.Contains(html, "support-ticket-alice") {
		t.Error("transcript missing channel name")
	}
}

func TestExportPagesThroughHistory(t *testing.T) {
	var messages []*discordgo.Message
	for idx := 250; idx >= 1; idx-- {
		messages = append(messages, testMessage(fmt.Sprintf("%d", idx), "alice", fmt.Sprintf("message %d", idx)))
	}
	fetcher := &fakeFetcher{messages: messages}

	html, err := Export(fetcher, "chan-1", "support-ticket-alice")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if fetcher.calls < 3 {
		t.Errorf("calls = %d, want at least 3 pages", fetcher.calls)
	}
	if !strings.Contains(html, "message 1") || !strings.Contains(html, "message 250") {
		t.Error("transcript missing paged messages")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	messages := []*discordgo.Message{
		testMessage("1", "mallory", `<script>alert("x")</script>`),
	}

	html, err := Render("support-ticket-mallory", messages)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("message content was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped content not found")
	}
}

func TestRenderSkipsAuthorlessMessages(t *testing.T) {
	messages := []*discordgo.Message{
		testMessage("1", "alice", "hello"),
		{ID: "2", Content: "ghost"},
	}

	html, err := Render("support-ticket-alice", messages)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "ghost") {
		t.Error("authorless message was rendered")
	}
}

func TestRenderAttachments(t *testing.T) {
	m := testMessage("1", "alice", "see screenshot")
	m.Attachments = []*discordgo.MessageAttachment{
		{Filename: "shot.png", URL: "https://cdn.example.com/shot.png"},
	}

	html, err := Render("support-ticket-alice", []*discordgo.Message{m})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "shot.png") || !strings.Contains(html, "https://cdn.example.com/shot.png") {
		t.Error("attachment link missing from transcript")
	}
}
