package bot

import "testing"

func TestInvitePattern(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"plain gg link", "join discord.gg/abc123", true},
		{"https gg link", "https://discord.gg/abc123", true},
		{"www invite link", "www.discord.com/invite/my-server", true},
		{"full invite link", "https://discord.com/invite/xyz", true},
		{"regular message", "hello everyone", false},
		{"discord mentioned without invite", "I love discord", false},
		{"unrelated url", "https://example.com/invite/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := invitePattern.MatchString(tt.content); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
