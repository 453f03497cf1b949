package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/giveaway"
)

func TestDrawWinnersClampsToParticipants(t *testing.T) {
	participants := []string{"a", "b", "c"}

	winners := drawWinners(participants, 10)
	if len(winners) != 3 {
		t.Fatalf("len(winners) = %d, want 3", len(winners))
	}

	seen := make(map[string]bool)
	for _, w := range winners {
		if seen[w] {
			t.Errorf("winner %q drawn twice", w)
		}
		seen[w] = true

		found := false
		for _, p := range participants {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("winner %q is not a participant", w)
		}
	}
}

func TestDrawWinnersSubset(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e"}

	winners := drawWinners(participants, 2)
	if len(winners) != 2 {
		t.Fatalf("len(winners) = %d, want 2", len(winners))
	}
	if winners[0] == winners[1] {
		t.Errorf("duplicate winner %q", winners[0])
	}
}

func TestDrawWinnersNoParticipants(t *testing.T) {
	if winners := drawWinners(nil, 5); winners != nil {
		t.Errorf("winners = %v, want nil", winners)
	}
}

func panelEmbedFixture() *discordgo.MessageEmbed {
	return giveawayEmbed("Big Drop", "Win a rank!", 1767225600, "<@42>")
}

func TestRebuildParticipantsEmbed(t *testing.T) {
	rebuilt := rebuildParticipantsEmbed(panelEmbedFixture(), 7)

	if rebuilt.Title != "Big Drop" || rebuilt.Description != "Win a rank!" {
		t.Errorf("title/description not preserved: %q %q", rebuilt.Title, rebuilt.Description)
	}
	if rebuilt.Color != colorGreen {
		t.Errorf("color = %#x, want %#x", rebuilt.Color, colorGreen)
	}
	if len(rebuilt.Fields) != 4 {
		t.Fatalf("len(fields) = %d, want 4", len(rebuilt.Fields))
	}

	for idx, field := range rebuilt.Fields {
		switch field.Name {
		case fieldParticipants:
			if field.Value != "7" {
				t.Errorf("Participants value = %q, want 7", field.Value)
			}
			if idx != 2 {
				t.Errorf("Participants field moved to position %d", idx)
			}
		case fieldWinners:
			if field.Value != "To be determined" {
				t.Errorf("Winners value changed: %q", field.Value)
			}
		}
	}
}

func TestSettledEmbedWithWinners(t *testing.T) {
	g := &giveaway.Giveaway{
		MessageID:    "m",
		ChannelID:    "c",
		EndTime:      1767225600,
		WinnerCount:  2,
		Participants: []string{"1", "2", "3"},
	}

	rebuilt := settledEmbed(panelEmbedFixture(), g, "<@1>, <@2>", true)

	if rebuilt.Color != colorRed {
		t.Errorf("color = %#x, want %#x", rebuilt.Color, colorRed)
	}
	if !strings.HasSuffix(rebuilt.Description, giveawayEndedSuffix) {
		t.Errorf("description missing ended suffix: %q", rebuilt.Description)
	}
	if !strings.HasPrefix(rebuilt.Description, "Win a rank!") {
		t.Errorf("original description lost: %q", rebuilt.Description)
	}

	var sawEnded, sawWinners bool
	for _, field := range rebuilt.Fields {
		switch field.Name {
		case fieldEnded:
			sawEnded = true
			if field.Value != "<t:1767225600:F>" {
				t.Errorf("Ended value = %q, want original timestamp", field.Value)
			}
		case fieldEnds:
			t.Error("Ends field was not renamed")
		case fieldWinners:
			sawWinners = true
			if field.Value != "<@1>, <@2>" {
				t.Errorf("Winners value = %q", field.Value)
			}
		case fieldParticipants:
			if field.Value != "3" {
				t.Errorf("Participants value = %q, want 3", field.Value)
			}
		}
	}
	if !sawEnded || !sawWinners {
		t.Errorf("missing fields: ended=%v winners=%v", sawEnded, sawWinners)
	}
}

func TestSettledEmbedNoWinners(t *testing.T) {
	g := &giveaway.Giveaway{
		MessageID:   "m",
		ChannelID:   "c",
		EndTime:     1767225600,
		WinnerCount: 2,
	}

	rebuilt := settledEmbed(panelEmbedFixture(), g, noWinnersPlaceholder, false)

	if !strings.HasSuffix(rebuilt.Description, giveawayNoWinnerSuffix) {
		t.Errorf("description missing no-winner suffix: %q", rebuilt.Description)
	}
	for _, field := range rebuilt.Fields {
		if field.Name == fieldWinners && field.Value != noWinnersPlaceholder {
			t.Errorf("Winners value = %q, want placeholder", field.Value)
		}
		if field.Name == fieldParticipants && field.Value != "0" {
			t.Errorf("Participants value = %q, want 0", field.Value)
		}
	}
}
